// Package builder converts the matched line tree into the typed AST.
package builder

import (
	"fmt"

	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/internal/grammar"
	"github.com/lex-fmt/core-sub004/internal/lines"
	"github.com/lex-fmt/core-sub004/lexer"
)

// Build turns the document node returned by grammar.Parse into an
// ast.Document. Annotations stay where they were written; attaching them
// is a separate pass.
//
// The returned error is an *ast.ParseError when a paragraph line or a
// container head carries a rejected annotation header, or when a session
// appears inside a definition, annotation or list item. In the latter case
// the ParseError wraps an *ast.PolicyError.
func Build(source string, root *grammar.ParseNode) (*ast.Document, error) {
	if root.Type != grammar.NodeDocument {
		panic(fmt.Sprintf("builder: root is %s, not Document", root.Type))
	}
	b := &builder{source: source, smap: ast.NewSourceMap(source)}

	children, extent, err := b.sessionContent(root.Children)
	if err != nil {
		return nil, err
	}
	doc := ast.NewDocument()
	doc.Root.Children = ast.NewSessionContainer(children...)
	doc.Root.Location = boundingBox(nil, extent)
	return doc, nil
}

type builder struct {
	source string
	smap   *ast.SourceMap
}

// sessionContent builds the children of a session-capable container. The
// extent covers every child including blank lines, which build to nothing
// but still belong to the container.
func (b *builder) sessionContent(nodes []*grammar.ParseNode) ([]ast.SessionContent, []ast.Range, error) {
	var out []ast.SessionContent
	var extent []ast.Range
	for _, n := range nodes {
		node, err := b.node(n)
		if err != nil {
			return nil, nil, err
		}
		if node == nil {
			extent = append(extent, b.blankRange(n))
			continue
		}
		sc, ok := node.(ast.SessionContent)
		if !ok {
			return nil, nil, &ast.PolicyError{Container: "SessionContainer", Node: node.Type()}
		}
		out = append(out, sc)
		extent = append(extent, sc.Range())
	}
	return out, extent, nil
}

func (b *builder) generalContent(nodes []*grammar.ParseNode) ([]ast.ContentElement, []ast.Range, error) {
	var out []ast.ContentElement
	var extent []ast.Range
	for _, n := range nodes {
		node, err := b.node(n)
		if err != nil {
			return nil, nil, err
		}
		if node == nil {
			extent = append(extent, b.blankRange(n))
			continue
		}
		el, err := ast.NarrowContent(node)
		if err != nil {
			return nil, nil, &ast.ParseError{
				Message: err.Error(),
				Offset:  node.Range().Span.Start,
				Err:     err,
			}
		}
		out = append(out, el)
		extent = append(extent, el.Range())
	}
	return out, extent, nil
}

func (b *builder) blankRange(n *grammar.ParseNode) ast.Range {
	ranges := make([]ast.Range, len(n.Header))
	for i, l := range n.Header {
		ranges[i] = b.lineRange(l)
	}
	return boundingBox(nil, ranges)
}

// node builds one ParseNode. Blank line groups build to nil.
func (b *builder) node(n *grammar.ParseNode) (ast.Node, error) {
	switch n.Type {
	case grammar.NodeParagraph:
		return b.paragraph(n.Header)
	case grammar.NodeSession:
		return b.session(n)
	case grammar.NodeDefinition:
		return b.definition(n)
	case grammar.NodeList:
		return b.list(n)
	case grammar.NodeAnnotation:
		return b.annotation(n)
	case grammar.NodeVerbatim:
		return b.verbatim(n)
	case grammar.NodeBlankLineGroup:
		return nil, nil
	default:
		panic(fmt.Sprintf("builder: unexpected %s node", n.Type))
	}
}

func (b *builder) paragraph(ls []*lines.Line) (*ast.Paragraph, error) {
	p := &ast.Paragraph{}
	ranges := make([]ast.Range, 0, len(ls))
	for _, l := range ls {
		if l.Err != nil {
			return nil, l.Err
		}
		text := b.text(l.Content())
		loc, _ := text.Range()
		p.Lines = append(p.Lines, &ast.TextLine{Content: text, Location: loc})
		ranges = append(ranges, loc)
	}
	p.Location = boundingBox(nil, ranges)
	return p, nil
}

func (b *builder) session(n *grammar.ParseNode) (*ast.Session, error) {
	head := header(n)
	if head.Err != nil {
		return nil, head.Err
	}
	children, extent, err := b.sessionContent(n.Children)
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", head.Text(b.source), err)
	}
	s := ast.NewSession(b.text(head.Content()), children...)
	s.Location = boundingBox([]ast.Range{b.lineRange(head)}, extent)
	return s, nil
}

func (b *builder) definition(n *grammar.ParseNode) (*ast.Definition, error) {
	head := header(n)
	if head.Err != nil {
		return nil, head.Err
	}
	children, extent, err := b.generalContent(n.Children)
	if err != nil {
		return nil, fmt.Errorf("definition %q: %w", head.Text(b.source), err)
	}
	d := ast.NewDefinition(b.text(head.Subject()), children...)
	d.Location = boundingBox([]ast.Range{b.lineRange(head)}, extent)
	return d, nil
}

func (b *builder) list(n *grammar.ParseNode) (*ast.List, error) {
	items := make([]*ast.ListItem, 0, len(n.Children))
	ranges := make([]ast.Range, 0, len(n.Children))
	for _, c := range n.Children {
		item, err := b.listItem(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		ranges = append(ranges, item.Location)
	}
	l := ast.NewList(items...)
	l.Location = boundingBox(nil, ranges)
	return l, nil
}

func (b *builder) listItem(n *grammar.ParseNode) (*ast.ListItem, error) {
	if n.Type != grammar.NodeListItem {
		panic(fmt.Sprintf("builder: list holds a %s node", n.Type))
	}
	head := header(n)
	if head.Marker == nil {
		panic("builder: list item line without a marker: " + head.String())
	}
	if head.Err != nil {
		return nil, head.Err
	}
	children, extent, err := b.generalContent(n.Children)
	if err != nil {
		return nil, fmt.Errorf("list item %q: %w", head.Text(b.source), err)
	}

	item := ast.NewListItem(head.Marker.Text(b.source, head.Tokens), b.text(head.Body()), children...)
	item.Marker.Style = head.Marker.Style
	item.Marker.Separator = head.Marker.Separator
	item.Marker.Form = head.Marker.Form
	item.Location = boundingBox([]ast.Range{b.lineRange(head)}, extent)
	return item, nil
}

// text wraps the source text of tokens with its range.
func (b *builder) text(tokens []lexer.Token) ast.TextContent {
	span, ok := lexer.BoundingSpan(tokens)
	if !ok {
		return ast.Text("")
	}
	loc := b.rangeOf(span)
	return ast.NewTextContent(b.source[span.Start:span.End], &loc)
}

func (b *builder) rangeOf(span lexer.Span) ast.Range {
	return b.smap.Range(ast.Span{Start: span.Start, End: span.End})
}

func (b *builder) lineRange(l *lines.Line) ast.Range {
	return b.rangeOf(l.Span())
}

func header(n *grammar.ParseNode) *lines.Line {
	if len(n.Header) != 1 {
		panic(fmt.Sprintf("builder: %s node with %d header lines", n.Type, len(n.Header)))
	}
	return n.Header[0]
}

func boundingBox(head, rest []ast.Range) ast.Range {
	r, _ := ast.BoundingBox(append(head, rest...)...)
	return r
}

func contentRanges(items []ast.ContentElement) []ast.Range {
	out := make([]ast.Range, len(items))
	for i, it := range items {
		out[i] = it.Range()
	}
	return out
}

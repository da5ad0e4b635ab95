package builder

import (
	"fmt"

	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/internal/grammar"
	"github.com/lex-fmt/core-sub004/internal/lines"
	"github.com/lex-fmt/core-sub004/lexer"
)

// annotation builds all three annotation forms. Text after the closing
// marker of the start line becomes a leading paragraph child.
func (b *builder) annotation(n *grammar.ParseNode) (*ast.Annotation, error) {
	start := header(n)
	if start.Header == nil {
		panic("builder: annotation line without a header: " + start.String())
	}

	var children []ast.ContentElement
	if len(start.Trailing) > 0 {
		children = append(children, b.trailingParagraph(start.Trailing))
	}
	body, extent, err := b.generalContent(n.Children)
	if err != nil {
		return nil, fmt.Errorf("annotation %q: %w", start.Header.Label, err)
	}
	children = append(children, body...)

	a := ast.NewAnnotation(start.Header.Label, b.parameters(start.Header), children...)
	a.Label.Location = b.rangeOf(start.Header.LabelSpan)

	ranges := []ast.Range{b.lineRange(start)}
	ranges = append(ranges, contentRanges(children)...)
	ranges = append(ranges, extent...)
	if n.End != nil {
		ranges = append(ranges, b.lineRange(n.End))
	}
	a.Location = boundingBox(nil, ranges)
	return a, nil
}

// dataAnnotation builds the closing line of a verbatim block.
func (b *builder) dataAnnotation(l *lines.Line) *ast.Annotation {
	if l.Type != lines.DataLine || l.Header == nil {
		panic("builder: verbatim closed by " + l.String())
	}
	a := ast.NewAnnotation(l.Header.Label, b.parameters(l.Header))
	a.Label.Location = b.rangeOf(l.Header.LabelSpan)
	a.Location = b.lineRange(l)
	return a
}

func (b *builder) parameters(h *lines.Header) []ast.Parameter {
	if len(h.Params) == 0 {
		return nil
	}
	out := make([]ast.Parameter, len(h.Params))
	for i, p := range h.Params {
		out[i] = ast.Parameter{
			Key:      p.Key,
			Value:    p.Value,
			HasValue: p.HasValue,
			Location: b.rangeOf(p.Span),
		}
	}
	return out
}

func (b *builder) trailingParagraph(tokens []lexer.Token) *ast.Paragraph {
	text := b.text(tokens)
	loc, _ := text.Range()
	p := ast.NewParagraph(&ast.TextLine{Content: text, Location: loc})
	p.Location = loc
	return p
}

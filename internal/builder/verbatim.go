package builder

import (
	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/internal/grammar"
	"github.com/lex-fmt/core-sub004/internal/lines"
	"github.com/lex-fmt/core-sub004/lexer"
)

// verbatim builds a verbatim block. Each group is stripped of its own
// indentation wall: the smallest depth among its non-blank content lines.
// Content with no indented container sits at the subject's own level, so
// the wall of a flat group is the subject's depth.
func (b *builder) verbatim(n *grammar.ParseNode) (*ast.Verbatim, error) {
	v := n.Verbatim
	if v == nil || len(v.Groups) == 0 || v.Closing == nil {
		panic("builder: verbatim node without groups or closing line")
	}

	block := &ast.Verbatim{Mode: ast.VerbatimFullwidth}
	var ranges []ast.Range
	for _, g := range v.Groups {
		if g.HasContainer() {
			block.Mode = ast.VerbatimInflow
		}
		group, groupRanges := b.verbatimGroup(g)
		block.Groups = append(block.Groups, group)
		ranges = append(ranges, groupRanges...)
	}
	block.Closing = b.dataAnnotation(v.Closing)
	ranges = append(ranges, block.Closing.Location)
	block.Location = boundingBox(nil, ranges)
	return block, nil
}

func (b *builder) verbatimGroup(g grammar.VerbatimGroup) (ast.VerbatimGroup, []ast.Range) {
	ranges := []ast.Range{b.lineRange(g.Subject)}
	content := trimBlankEdges(flatten(g.Content))

	wall := -1
	for _, l := range content {
		if l.Type != lines.BlankLine && (wall < 0 || l.Depth < wall) {
			wall = l.Depth
		}
	}
	if wall < 0 {
		wall = g.Subject.Depth
	}

	out := make([]*ast.VerbatimLine, 0, len(content))
	for _, l := range content {
		line := b.verbatimLine(l, wall)
		out = append(out, line)
		ranges = append(ranges, line.Location)
	}
	return ast.VerbatimGroup{
		Subject:  b.text(g.Subject.Subject()),
		Children: ast.NewVerbatimContainer(out...),
	}, ranges
}

// verbatimLine keeps the raw text right of the wall, including whitespace
// the normalizer dropped from the token stream. Blank lines become empty
// and are located at their line terminator.
func (b *builder) verbatimLine(l *lines.Line, wall int) *ast.VerbatimLine {
	if l.Type == lines.BlankLine {
		loc := b.rangeOf(terminator(l))
		return &ast.VerbatimLine{Content: ast.Text(""), Location: loc}
	}
	start, end := l.IndentEnd(wall), l.TextEnd()
	loc := b.rangeOf(lexer.Span{Start: start, End: end})
	return &ast.VerbatimLine{
		Content:  ast.NewTextContent(b.source[start:end], &loc),
		Location: loc,
	}
}

// terminator is the span of the "\n" or "\r\n" closing l.
func terminator(l *lines.Line) lexer.Span {
	for i := len(l.Tokens) - 1; i >= 0; i-- {
		if l.Tokens[i].Kind == lexer.BlankLine {
			return l.Tokens[i].Span
		}
	}
	end := l.FullSpan().End
	return lexer.Span{Start: end, End: end}
}

func flatten(entries []lines.Entry) []*lines.Line {
	var out []*lines.Line
	for _, e := range entries {
		switch e := e.(type) {
		case *lines.Line:
			out = append(out, e)
		case *lines.Container:
			out = append(out, e.Lines()...)
		}
	}
	return out
}

func trimBlankEdges(ls []*lines.Line) []*lines.Line {
	for len(ls) > 0 && ls[0].Type == lines.BlankLine {
		ls = ls[1:]
	}
	for len(ls) > 0 && ls[len(ls)-1].Type == lines.BlankLine {
		ls = ls[:len(ls)-1]
	}
	return ls
}

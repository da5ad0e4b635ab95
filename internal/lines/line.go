package lines

import (
	"fmt"

	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/lexer"
)

// LineType is the syntactic class of a line.
type LineType int

const (
	BlankLine LineType = iota
	AnnotationEndLine
	AnnotationStartLine
	DataLine
	SubjectOrListItemLine
	ListLine
	SubjectLine
	ParagraphLine
)

var lineTypeNames = [...]string{
	BlankLine:             "BlankLine",
	AnnotationEndLine:     "AnnotationEndLine",
	AnnotationStartLine:   "AnnotationStartLine",
	DataLine:              "DataLine",
	SubjectOrListItemLine: "SubjectOrListItemLine",
	ListLine:              "ListLine",
	SubjectLine:           "SubjectLine",
	ParagraphLine:         "ParagraphLine",
}

func (t LineType) String() string {
	if t >= 0 && int(t) < len(lineTypeNames) {
		return lineTypeNames[t]
	}
	return fmt.Sprintf("LineType(%d)", int(t))
}

// IsSubject reports whether the line can head a session, definition or
// verbatim block.
func (t LineType) IsSubject() bool {
	return t == SubjectLine || t == SubjectOrListItemLine
}

// IsListItem reports whether the line opens with a list marker.
func (t LineType) IsListItem() bool {
	return t == ListLine || t == SubjectOrListItemLine
}

// Entry is one child of a Container: a *Line or a nested *Container.
type Entry interface {
	entry()
}

// Line is a classified source line.
type Line struct {
	Type LineType
	// Tokens holds every token of the line: leading indentation, content,
	// and the terminating BlankLine token when present.
	Tokens []lexer.Token
	// Depth is the number of leading Indentation tokens.
	Depth int

	// Marker is set for list item lines.
	Marker *Marker
	// Header is set for AnnotationStartLine and DataLine.
	Header *Header
	// Trailing holds the content after the closing marker of an
	// AnnotationStartLine, e.g. "Check this" in ":: note :: Check this".
	Trailing []lexer.Token

	// Err records a header the grammar rejects. The line is classified as
	// prose; the error surfaces only if the line is built as text.
	Err *ast.ParseError
}

func (*Line) entry() {}

// Content returns the tokens of the line without leading and trailing
// space and without the line terminator.
func (l *Line) Content() []lexer.Token {
	return trimSpace(l.Tokens)
}

// Span is the byte span of Content. Blank lines report an empty span at
// the start of the line.
func (l *Line) Span() lexer.Span {
	if span, ok := lexer.BoundingSpan(l.Content()); ok {
		return span
	}
	if len(l.Tokens) == 0 {
		return lexer.Span{}
	}
	start := l.Tokens[0].Span.Start
	return lexer.Span{Start: start, End: start}
}

// FullSpan covers every token of the line, terminator included.
func (l *Line) FullSpan() lexer.Span {
	span, _ := lexer.BoundingSpan(l.Tokens)
	return span
}

// Text returns the source text of Content.
func (l *Line) Text(source string) string {
	span := l.Span()
	return source[span.Start:span.End]
}

func (l *Line) String() string {
	return fmt.Sprintf("%s@%d%s", l.Type, l.Depth, l.Span())
}

// Container groups the lines of one indentation level.
type Container struct {
	Entries []Entry
}

func (*Container) entry() {}

// Lines returns every line under c, depth first, in source order.
func (c *Container) Lines() []*Line {
	var out []*Line
	for _, e := range c.Entries {
		switch e := e.(type) {
		case *Line:
			out = append(out, e)
		case *Container:
			out = append(out, e.Lines()...)
		}
	}
	return out
}

func trimSpace(tokens []lexer.Token) []lexer.Token {
	start, end := 0, len(tokens)
	for start < end && skippable(tokens[start].Kind) {
		start++
	}
	for end > start && skippable(tokens[end-1].Kind) {
		end--
	}
	return tokens[start:end]
}

func skippable(k lexer.TokenKind) bool {
	return k.IsSpace() || k == lexer.BlankLine || k.IsSynthetic()
}

// Body returns the content after the list marker, or Content when the line
// has no marker.
func (l *Line) Body() []lexer.Token {
	if l.Marker == nil {
		return l.Content()
	}
	return trimSpace(l.Tokens[l.Marker.Body:])
}

// Subject returns Content without the trailing colon.
func (l *Line) Subject() []lexer.Token {
	c := l.Content()
	if n := len(c); n > 0 && c[n-1].Kind == lexer.Colon {
		return trimSpace(c[:n-1])
	}
	return c
}

// IndentEnd is the source offset just past the first n indentation tokens.
// The raw text after it keeps any whitespace the normalizer dropped.
func (l *Line) IndentEnd(n int) int {
	if n > l.Depth {
		n = l.Depth
	}
	if n == 0 {
		return l.FullSpan().Start
	}
	return l.Tokens[n-1].Span.End
}

// TextEnd is the source offset of the line terminator, or the end of the
// line when it has none.
func (l *Line) TextEnd() int {
	end := l.FullSpan().End
	if n := len(l.Tokens); n > 0 && l.Tokens[n-1].Kind == lexer.BlankLine {
		end = l.Tokens[n-1].Span.Start
	}
	return end
}

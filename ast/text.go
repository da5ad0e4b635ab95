package ast

import (
	"sync"

	"github.com/lex-fmt/core-sub004/inline"
)

// TextContent is the text of a leaf: the literal string, where it came
// from, and its inline spans, parsed on first use.
type TextContent struct {
	text     string
	location *Range
	spans    *inlineSpans
}

type inlineSpans struct {
	once  sync.Once
	nodes []inline.Node
}

// NewTextContent wraps text read from location. location may be nil for
// text that has no source, such as synthesized titles.
func NewTextContent(text string, location *Range) TextContent {
	return TextContent{text: text, location: location, spans: &inlineSpans{}}
}

// Text builds a TextContent without a source range.
func Text(text string) TextContent {
	return NewTextContent(text, nil)
}

func (t TextContent) String() string { return t.text }

func (t TextContent) IsEmpty() bool { return t.text == "" }

// Range returns the source range of the text, if it has one.
func (t TextContent) Range() (Range, bool) {
	if t.location == nil {
		return Range{}, false
	}
	return *t.location, true
}

// Inlines returns the inline spans of the text. The first call parses; the
// result is shared by every copy of t.
func (t TextContent) Inlines() []inline.Node {
	if t.spans == nil {
		return inline.Parse(t.text)
	}
	t.spans.once.Do(func() {
		t.spans.nodes = inline.Parse(t.text)
	})
	return t.spans.nodes
}

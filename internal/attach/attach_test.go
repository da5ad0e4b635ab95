package attach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/internal/builder"
	"github.com/lex-fmt/core-sub004/internal/grammar"
	"github.com/lex-fmt/core-sub004/internal/lines"
	"github.com/lex-fmt/core-sub004/lexer"
)

func parse(t *testing.T, src string) *ast.Document {
	t.Helper()
	tree := lines.Build(src, lexer.Normalize(lexer.Tokenize(src)))
	doc, err := builder.Build(src, grammar.Parse(tree))
	require.NoError(t, err)
	Attach(doc)
	return doc
}

func labels(anns []*ast.Annotation) []string {
	out := make([]string, len(anns))
	for i, a := range anns {
		out[i] = a.Label.Value
	}
	return out
}

const scenario = `:: note ::
    Doc note.
::

Intro:

    :: todo ::
        Body
    ::

Paragraph text.

:: info ::
    Extra details.
::
`

func TestScenario(t *testing.T) {
	t.Parallel()
	doc := parse(t, scenario)

	assert.Equal(t, []string{"note", "info"}, labels(doc.Annotations))

	children := doc.Children()
	require.Len(t, children, 2)
	intro, ok := children[0].(*ast.Session)
	require.True(t, ok)
	assert.Equal(t, []string{"todo"}, labels(intro.Annotations))
	assert.Equal(t, 0, intro.Children.Len())

	para, ok := children[1].(*ast.Paragraph)
	require.True(t, ok)
	assert.Empty(t, para.Annotations)
}

func TestAttach(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		// owner returns the annotations of the node expected to own "x"
		owner func(doc *ast.Document) []*ast.Annotation
	}{
		{
			name:  "tie goes to next",
			input: "First\n\n:: x ::\n\nSecond\n",
			owner: func(doc *ast.Document) []*ast.Annotation {
				return doc.Children()[1].(*ast.Paragraph).Annotations
			},
		},
		{
			name:  "closer previous wins",
			input: "First\n:: x ::\n\nSecond\n",
			owner: func(doc *ast.Document) []*ast.Annotation {
				return doc.Children()[0].(*ast.Paragraph).Annotations
			},
		},
		{
			name:  "document start needs a blank line",
			input: ":: x ::\nFirst\n",
			owner: func(doc *ast.Document) []*ast.Annotation {
				return doc.Children()[0].(*ast.Paragraph).Annotations
			},
		},
		{
			name:  "document start",
			input: ":: x ::\n\nFirst\n",
			owner: func(doc *ast.Document) []*ast.Annotation {
				return doc.Annotations
			},
		},
		{
			name:  "container end beats a distant previous",
			input: "Term:\n    Body\n\n    :: x ::\n",
			owner: func(doc *ast.Document) []*ast.Annotation {
				return doc.Children()[0].(*ast.Definition).Annotations
			},
		},
		{
			name:  "adjacent previous beats a distant container end",
			input: "Intro\n\n    Body\n    :: x ::\n\n\nAfter\n",
			owner: func(doc *ast.Document) []*ast.Annotation {
				s := doc.Children()[0].(*ast.Session)
				return s.Children.Items()[0].(*ast.Paragraph).Annotations
			},
		},
		{
			name:  "list item body",
			input: "- a\n    :: x ::\n- b\n",
			owner: func(doc *ast.Document) []*ast.Annotation {
				return doc.Children()[0].(*ast.List).Items.Items()[0].Annotations
			},
		},
		{
			name:  "verbatim block",
			input: "Lead\n\nCode:\n    x\n:: text\n:: x ::\n\nTail\n",
			owner: func(doc *ast.Document) []*ast.Annotation {
				return doc.Children()[1].(*ast.Verbatim).Annotations
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := parse(t, tt.input)
			assert.Equal(t, []string{"x"}, labels(tt.owner(doc)))
		})
	}
}

func TestUnresolvableStays(t *testing.T) {
	t.Parallel()
	doc := parse(t, ":: outer ::\n    :: inner ::\n::\n")
	require.Len(t, doc.Annotations, 1)
	outer := doc.Annotations[0]
	require.Equal(t, 1, outer.Children.Len())
	inner, ok := outer.Children.Items()[0].(*ast.Annotation)
	require.True(t, ok)
	assert.Equal(t, "inner", inner.Label.Value)
}

func TestIdempotent(t *testing.T) {
	t.Parallel()
	doc := parse(t, scenario)
	before := ast.Dump(doc)
	Attach(doc)
	assert.Equal(t, before, ast.Dump(doc))
}

func TestDecide(t *testing.T) {
	t.Parallel()
	prev := candidate{distance: 1, target: target{index: 0}}
	next := candidate{distance: 1, target: target{index: 2}}
	tests := []struct {
		name   string
		d      decision
		want   target
		wantOK bool
	}{
		{"tie", decision{prev: prev, hasPrev: true, next: next, hasNext: true}, target{index: 2}, true},
		{"previous closer", decision{prev: candidate{target: target{index: 0}}, hasPrev: true, next: next, hasNext: true}, target{index: 0}, true},
		{"only previous", decision{prev: prev, hasPrev: true}, target{index: 0}, true},
		{"container stands in", decision{prev: prev, hasPrev: true, toEnd: 1, containerAllowed: true}, target{container: true}, true},
		{"container farther", decision{prev: prev, hasPrev: true, toEnd: 2, containerAllowed: true}, target{index: 0}, true},
		{"document start", decision{next: next, hasNext: true, blankAfter: 1, document: true}, target{container: true}, true},
		{"nothing", decision{}, target{}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := decide(tt.d)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlankLinesBetween(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, blankLinesBetween(entry{start: 0, end: 0}, entry{start: 1, end: 1}))
	assert.Equal(t, 2, blankLinesBetween(entry{start: 0, end: 1}, entry{start: 4, end: 5}))
	assert.Equal(t, 0, blankLinesBetween(entry{start: 0, end: 3}, entry{start: 2, end: 4}))
}

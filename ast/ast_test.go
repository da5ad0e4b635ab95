package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rng(startLine, startCol, endLine, endCol int) Range {
	// spans are not needed by these tests; keep them unique and ordered
	return Range{
		Span:  Span{Start: startLine*100 + startCol, End: endLine*100 + endCol},
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

func line(text string, r Range) *TextLine {
	return &TextLine{Content: NewTextContent(text, &r), Location: r}
}

// sampleDoc mirrors:
//
//	0 :: note ::
//	1 Intro:
//	2
//	3     body
//	4     :: todo ::
//	5 Outro
func sampleDoc() (*Document, map[string]Node) {
	note := NewAnnotation("note", nil)
	note.Location = rng(0, 0, 0, 10)

	body := NewParagraph(line("body", rng(3, 4, 3, 8)))
	body.Location = rng(3, 4, 3, 8)

	todo := NewAnnotation("todo", nil)
	todo.Location = rng(4, 4, 4, 14)
	body.Attach(todo)

	intro := NewSession(Text("Intro"), body)
	intro.Location = rng(1, 0, 4, 14)

	outro := NewParagraph(line("Outro", rng(5, 0, 5, 5)))
	outro.Location = rng(5, 0, 5, 5)

	doc := NewDocument()
	doc.Root.Children.Append(intro, outro)
	doc.Root.Location = rng(1, 0, 5, 5)
	doc.Attach(note)

	return doc, map[string]Node{
		"note": note, "todo": todo, "body": body, "intro": intro, "outro": outro,
	}
}

func TestContainerPolicy(t *testing.T) {
	t.Parallel()
	session := NewSession(Text("S"))
	para := NewParagraph()

	_, err := GeneralContainerFrom([]Node{para, session})
	var policy *PolicyError
	require.ErrorAs(t, err, &policy)
	assert.Equal(t, NodeSession, policy.Node)

	_, err = ListContainerFrom([]Node{session})
	require.Error(t, err)

	_, err = VerbatimContainerFrom([]Node{session})
	require.Error(t, err)

	c, err := GeneralContainerFrom([]Node{para})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = NarrowContent(session)
	assert.Error(t, err)
}

type countingVisitor struct {
	BaseVisitor
	order []string
}

func (v *countingVisitor) VisitSession(s *Session)       { v.order = append(v.order, "session:"+s.Title.String()) }
func (v *countingVisitor) VisitParagraph(p *Paragraph)   { v.order = append(v.order, "para:"+p.Text()) }
func (v *countingVisitor) VisitAnnotation(a *Annotation) { v.order = append(v.order, "ann:"+a.Label.Value) }

func TestVisitorOrder(t *testing.T) {
	t.Parallel()
	doc, _ := sampleDoc()
	v := &countingVisitor{}
	Walk(v, doc)

	assert.Equal(t, []string{
		"ann:note",
		"session:",
		"session:Intro",
		"para:body",
		"ann:todo",
		"para:Outro",
	}, v.order)
}

func TestInspectCountsNodes(t *testing.T) {
	t.Parallel()
	doc, _ := sampleDoc()
	counts := map[NodeType]int{}
	Inspect(doc, func(n Node) { counts[n.Type()]++ })

	assert.Equal(t, 1, counts[NodeDocument])
	assert.Equal(t, 2, counts[NodeSession])
	assert.Equal(t, 2, counts[NodeParagraph])
	assert.Equal(t, 2, counts[NodeTextLine])
	assert.Equal(t, 2, counts[NodeAnnotation])
}

func TestFindNodesAtPosition(t *testing.T) {
	t.Parallel()
	doc, nodes := sampleDoc()

	tests := []struct {
		name string
		pos  Position
		want []string
	}{
		{"inside body", Position{3, 5}, []string{"Session", "Session", "Paragraph", "TextLine"}},
		{"inside attached annotation", Position{4, 6}, []string{"Session", "Session", "Annotation"}},
		{"outro", Position{5, 2}, []string{"Session", "Paragraph", "TextLine"}},
		{"document annotation", Position{0, 3}, []string{"Session", "Annotation"}},
		{"outside", Position{9, 0}, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := FindNodesAtPosition(doc, tt.pos)
			var got []string
			for _, n := range path {
				got = append(got, n.Type().String())
			}
			assert.Equal(t, tt.want, got)
		})
	}

	path := FindNodesAtPosition(doc, Position{4, 6})
	require.Len(t, path, 3)
	assert.Same(t, nodes["todo"], path[2])
}

func TestAnnotationNavigation(t *testing.T) {
	t.Parallel()
	doc, nodes := sampleDoc()

	all := Annotations(doc)
	require.Len(t, all, 2)
	assert.Same(t, nodes["note"], all[0])
	assert.Same(t, nodes["todo"], all[1])

	next, ok := NextAnnotation(doc, Position{1, 0})
	require.True(t, ok)
	assert.Same(t, nodes["todo"], next)

	next, ok = NextAnnotation(doc, Position{5, 0})
	require.True(t, ok)
	assert.Same(t, nodes["note"], next, "wraps to the first annotation")

	prev, ok := PreviousAnnotation(doc, Position{3, 0})
	require.True(t, ok)
	assert.Same(t, nodes["note"], prev)

	prev, ok = PreviousAnnotation(doc, Position{0, 0})
	require.True(t, ok)
	assert.Same(t, nodes["todo"], prev, "wraps to the last annotation")

	found, ok := FindAnnotationByLabel(doc, "todo")
	require.True(t, ok)
	assert.Same(t, nodes["todo"], found)
	_, ok = FindAnnotationByLabel(doc, "missing")
	assert.False(t, ok)

	_, ok = NextAnnotation(NewDocument(), Position{})
	assert.False(t, ok)
}

func TestDump(t *testing.T) {
	t.Parallel()
	doc, _ := sampleDoc()
	want := `Document
  @Annotation "note"
  Session ""
    Session "Intro"
      Paragraph "body" (1 lines)
        @Annotation "todo"
        TextLine "body"
    Paragraph "Outro" (1 lines)
      TextLine "Outro"
`
	assert.Equal(t, want, Dump(doc))

	j := ToJSON(doc)
	require.Len(t, j.Annotations, 1)
	assert.Equal(t, "note", j.Annotations[0].Label)
	require.Len(t, j.Children, 1)
	assert.Len(t, j.Children[0].Children, 2)
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	long := "ééééééééééééééééééééééééééééééééééééééééé" // 2-byte runes
	out := truncate(long)
	assert.True(t, len(out) <= maxLabelWidth+3)
	assert.Equal(t, "...", out[len(out)-3:])
	assert.Equal(t, "short", truncate("short"))
}

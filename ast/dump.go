package ast

import (
	"strings"
)

// Dump renders n and its descendants as an indented tree, one node per
// line. Attached annotations are listed under their owner with an "@"
// prefix.
func Dump(n Node) string {
	var sb strings.Builder
	dumpNode(&sb, n, 0, "")
	return sb.String()
}

func dumpNode(sb *strings.Builder, n Node, depth int, prefix string) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(prefix)
	sb.WriteString(n.String())
	sb.WriteString("\n")

	if ann, ok := n.(Annotatable); ok {
		for _, a := range ann.AttachedAnnotations() {
			dumpNode(sb, a, depth+1, "@")
		}
	}
	if v, ok := n.(*Verbatim); ok && v.Closing != nil {
		dumpNode(sb, v.Closing, depth+1, "closing ")
	}
	for _, child := range ChildrenOf(n) {
		dumpNode(sb, child, depth+1, "")
	}
}

// JSONNode is a serializable view of the tree used by the parse command.
type JSONNode struct {
	Type        string      `json:"type"`
	Text        string      `json:"text,omitempty"`
	Marker      *ListMarker `json:"marker,omitempty"`
	Label       string      `json:"label,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	Mode        string      `json:"mode,omitempty"`
	Range       Range       `json:"range"`
	Annotations []*JSONNode `json:"annotations,omitempty"`
	Children    []*JSONNode `json:"children,omitempty"`
}

// ToJSON converts n into its JSON view.
func ToJSON(n Node) *JSONNode {
	out := &JSONNode{Type: n.Type().String(), Range: n.Range()}

	switch n := n.(type) {
	case *Session:
		out.Text = n.Title.String()
	case *Definition:
		out.Text = n.Subject.String()
	case *Paragraph:
		out.Text = n.Text()
	case *TextLine:
		out.Text = n.Content.String()
	case *ListItem:
		m := n.Marker
		out.Marker = &m
		out.Text = n.Text.String()
	case *Annotation:
		out.Label = n.Label.Value
		out.Parameters = n.Parameters
	case *Verbatim:
		out.Text = n.Subject().String()
		out.Mode = n.Mode.String()
		if n.Closing != nil {
			out.Label = n.Closing.Label.Value
			out.Parameters = n.Closing.Parameters
		}
	case *VerbatimLine:
		out.Text = n.Content.String()
	}

	if ann, ok := n.(Annotatable); ok {
		for _, a := range ann.AttachedAnnotations() {
			out.Annotations = append(out.Annotations, ToJSON(a))
		}
	}
	for _, child := range ChildrenOf(n) {
		out.Children = append(out.Children, ToJSON(child))
	}
	return out
}

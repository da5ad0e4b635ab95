package ast

import "fmt"

// NodeType identifies the variant of an AST node.
type NodeType int

const (
	NodeDocument NodeType = iota
	NodeSession
	NodeParagraph
	NodeTextLine
	NodeList
	NodeListItem
	NodeDefinition
	NodeAnnotation
	NodeVerbatim
	NodeVerbatimLine
)

var nodeTypeNames = [...]string{
	NodeDocument:     "Document",
	NodeSession:      "Session",
	NodeParagraph:    "Paragraph",
	NodeTextLine:     "TextLine",
	NodeList:         "List",
	NodeListItem:     "ListItem",
	NodeDefinition:   "Definition",
	NodeAnnotation:   "Annotation",
	NodeVerbatim:     "VerbatimBlock",
	NodeVerbatimLine: "VerbatimLine",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// Node is implemented by every AST node.
type Node interface {
	Type() NodeType
	Range() Range
	Accept(v Visitor)
	// String returns a short, single-line description for dumps.
	String() string
}

// SessionContent is any node a SessionContainer may hold.
type SessionContent interface {
	Node
	sessionContent()
}

// ContentElement is any node a GeneralContainer may hold. Session does not
// implement it, which keeps sessions out of definitions, annotations and
// list items at compile time.
type ContentElement interface {
	SessionContent
	contentElement()
}

// Annotatable nodes own an annotations slot filled by the attachment pass.
type Annotatable interface {
	Node
	AttachedAnnotations() []*Annotation
	Attach(a *Annotation)
}

var (
	_ Node = (*Document)(nil)
	_ Node = (*TextLine)(nil)
	_ Node = (*ListItem)(nil)
	_ Node = (*VerbatimLine)(nil)

	_ SessionContent = (*Session)(nil)

	_ ContentElement = (*Paragraph)(nil)
	_ ContentElement = (*List)(nil)
	_ ContentElement = (*Definition)(nil)
	_ ContentElement = (*Annotation)(nil)
	_ ContentElement = (*Verbatim)(nil)

	_ Annotatable = (*Document)(nil)
	_ Annotatable = (*Session)(nil)
	_ Annotatable = (*Paragraph)(nil)
	_ Annotatable = (*List)(nil)
	_ Annotatable = (*ListItem)(nil)
	_ Annotatable = (*Definition)(nil)
	_ Annotatable = (*Verbatim)(nil)
)

// annotations is embedded by every annotatable node.
type annotations struct {
	Annotations []*Annotation `json:"-"`
}

func (a *annotations) AttachedAnnotations() []*Annotation { return a.Annotations }

func (a *annotations) Attach(ann *Annotation) {
	a.Annotations = append(a.Annotations, ann)
}

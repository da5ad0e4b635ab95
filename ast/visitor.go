package ast

// Visitor receives one callback per node variant. Nodes drive the walk:
// each Accept calls the matching Visit method, then the node's attached
// annotations, then its children in source order.
type Visitor interface {
	VisitDocument(*Document)
	VisitSession(*Session)
	VisitParagraph(*Paragraph)
	VisitTextLine(*TextLine)
	VisitList(*List)
	VisitListItem(*ListItem)
	VisitDefinition(*Definition)
	VisitAnnotation(*Annotation)
	VisitVerbatim(*Verbatim)
	VisitVerbatimLine(*VerbatimLine)
}

// BaseVisitor implements every Visit method as a no-op. Embed it and
// override only what you need.
type BaseVisitor struct{}

func (BaseVisitor) VisitDocument(*Document)         {}
func (BaseVisitor) VisitSession(*Session)           {}
func (BaseVisitor) VisitParagraph(*Paragraph)       {}
func (BaseVisitor) VisitTextLine(*TextLine)         {}
func (BaseVisitor) VisitList(*List)                 {}
func (BaseVisitor) VisitListItem(*ListItem)         {}
func (BaseVisitor) VisitDefinition(*Definition)     {}
func (BaseVisitor) VisitAnnotation(*Annotation)     {}
func (BaseVisitor) VisitVerbatim(*Verbatim)         {}
func (BaseVisitor) VisitVerbatimLine(*VerbatimLine) {}

var _ Visitor = BaseVisitor{}

// Walk starts a traversal at n.
func Walk(v Visitor, n Node) {
	if n != nil {
		n.Accept(v)
	}
}

// Inspect calls fn for every node reachable from n, in visiting order.
func Inspect(n Node, fn func(Node)) {
	Walk(&funcVisitor{fn: fn}, n)
}

type funcVisitor struct {
	fn func(Node)
}

func (f *funcVisitor) VisitDocument(n *Document)         { f.fn(n) }
func (f *funcVisitor) VisitSession(n *Session)           { f.fn(n) }
func (f *funcVisitor) VisitParagraph(n *Paragraph)       { f.fn(n) }
func (f *funcVisitor) VisitTextLine(n *TextLine)         { f.fn(n) }
func (f *funcVisitor) VisitList(n *List)                 { f.fn(n) }
func (f *funcVisitor) VisitListItem(n *ListItem)         { f.fn(n) }
func (f *funcVisitor) VisitDefinition(n *Definition)     { f.fn(n) }
func (f *funcVisitor) VisitAnnotation(n *Annotation)     { f.fn(n) }
func (f *funcVisitor) VisitVerbatim(n *Verbatim)         { f.fn(n) }
func (f *funcVisitor) VisitVerbatimLine(n *VerbatimLine) { f.fn(n) }

package ast

// Document is the root of a parsed tree: an untitled root session plus the
// annotations that attach to the document as a whole.
type Document struct {
	Root *Session
	annotations
}

func NewDocument() *Document {
	return &Document{Root: &Session{}}
}

func (d *Document) Type() NodeType { return NodeDocument }

func (d *Document) Range() Range {
	if d.Root == nil {
		return Range{}
	}
	return d.Root.Location
}

func (d *Document) Accept(v Visitor) {
	v.VisitDocument(d)
	for _, a := range d.Annotations {
		a.Accept(v)
	}
	if d.Root != nil {
		d.Root.Accept(v)
	}
}

func (d *Document) String() string { return "Document" }

// Children returns the top-level content of the document.
func (d *Document) Children() []SessionContent {
	if d.Root == nil {
		return nil
	}
	return d.Root.Children.Items()
}

package ast

// ChildrenOf returns the structural children of n in source order. Attached
// annotations are not included; use Annotatable for those.
func ChildrenOf(n Node) []Node {
	switch n := n.(type) {
	case *Document:
		if n.Root == nil {
			return nil
		}
		return []Node{n.Root}
	case *Session:
		return sessionNodes(n.Children.Items())
	case *Definition:
		return contentNodes(n.Children.Items())
	case *Annotation:
		return contentNodes(n.Children.Items())
	case *ListItem:
		return contentNodes(n.Children.Items())
	case *List:
		out := make([]Node, 0, n.Items.Len())
		for _, it := range n.Items.Items() {
			out = append(out, it)
		}
		return out
	case *Paragraph:
		out := make([]Node, 0, len(n.Lines))
		for _, l := range n.Lines {
			out = append(out, l)
		}
		return out
	case *Verbatim:
		var out []Node
		for _, g := range n.Groups {
			for _, l := range g.Children.Lines() {
				out = append(out, l)
			}
		}
		return out
	}
	return nil
}

func sessionNodes(items []SessionContent) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func contentNodes(items []ContentElement) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// FindNodesAtPosition returns the path from the root session to the deepest
// node whose range contains pos. Attached annotations are searched along
// with the children of each node. The result is empty when pos lies
// outside the document.
func FindNodesAtPosition(doc *Document, pos Position) []Node {
	if doc == nil || doc.Root == nil {
		return nil
	}

	var path []Node
	var current Node = doc.Root
	if !containsPos(current, pos) {
		// the root may still carry document-level annotations that start
		// before its first child
		for _, a := range doc.Annotations {
			if containsPos(a, pos) {
				return append(path, doc.Root, a)
			}
		}
		return nil
	}

	for current != nil {
		path = append(path, current)
		current = childAt(current, pos)
	}
	if len(path) == 1 {
		for _, a := range doc.Annotations {
			if containsPos(a, pos) {
				path = append(path, a)
				break
			}
		}
	}
	return path
}

func childAt(n Node, pos Position) Node {
	for _, child := range ChildrenOf(n) {
		if containsPos(child, pos) {
			return child
		}
		if ann, ok := child.(Annotatable); ok {
			for _, a := range ann.AttachedAnnotations() {
				if containsPos(a, pos) {
					return a
				}
			}
		}
	}
	if ann, ok := n.(Annotatable); ok {
		for _, a := range ann.AttachedAnnotations() {
			if containsPos(a, pos) {
				return a
			}
		}
	}
	return nil
}

func containsPos(n Node, pos Position) bool {
	r := n.Range()
	return !r.IsZero() && r.Contains(pos)
}

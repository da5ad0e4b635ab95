// Package attach moves annotations out of content position and onto the
// nodes they describe.
//
// Within each container, an annotation attaches to the closest non-annotation
// sibling, measured in blank lines. Ties go to the following sibling. When
// nothing follows, the container itself competes as the next candidate, at
// the distance to its last line. An annotation at the very start of the
// document that is followed by a blank line belongs to the document.
// Annotations with no candidate at all stay where they are.
package attach

import "github.com/lex-fmt/core-sub004/ast"

// Attach runs the pass over doc in place. Running it twice is a no-op.
func Attach(doc *ast.Document) {
	if doc == nil || doc.Root == nil {
		return
	}
	root := doc.Root
	root.Children.Replace(attachIn(root.Children.Items(), doc, true, root.Location.End.Line))
	for _, child := range root.Children.Items() {
		descend(child)
	}
	for _, a := range doc.Annotations {
		descend(a)
	}
}

func descend(n ast.Node) {
	switch n := n.(type) {
	case *ast.Session:
		n.Children.Replace(attachIn(n.Children.Items(), n, false, n.Location.End.Line))
		for _, child := range n.Children.Items() {
			descend(child)
		}
	case *ast.Definition:
		n.Children.Replace(attachIn(n.Children.Items(), n, false, n.Location.End.Line))
		descendAll(n.Children.Items())
	case *ast.ListItem:
		n.Children.Replace(attachIn(n.Children.Items(), n, false, n.Location.End.Line))
		descendAll(n.Children.Items())
	case *ast.List:
		for _, item := range n.Items.Items() {
			descend(item)
		}
	case *ast.Annotation:
		n.Children.Replace(attachIn(n.Children.Items(), nil, false, n.Location.End.Line))
		descendAll(n.Children.Items())
		return
	default:
		return
	}
	if a, ok := n.(ast.Annotatable); ok {
		for _, ann := range a.AttachedAnnotations() {
			descend(ann)
		}
	}
}

func descendAll(items []ast.ContentElement) {
	for _, child := range items {
		descend(child)
	}
}

// attachIn resolves the annotations among items and returns the items that
// stay in content position. sink receives annotations that attach to the
// container; a nil sink means the container cannot hold any.
func attachIn[T ast.SessionContent](items []T, sink ast.Annotatable, document bool, endLine int) []T {
	entries := make([]entry, len(items))
	hasAnnotation := false
	for i, it := range items {
		r := it.Range()
		_, isAnn := any(it).(*ast.Annotation)
		hasAnnotation = hasAnnotation || isAnn
		entries[i] = entry{annotation: isAnn, start: r.Start.Line, end: r.End.Line}
	}
	if !hasAnnotation {
		return items
	}

	moved := make(map[int]bool)
	for i, e := range entries {
		if !e.annotation {
			continue
		}
		prev, hasPrev := previousContent(entries, i)
		next, hasNext := nextContent(entries, i)
		t, ok := decide(decision{
			prev:             prev,
			hasPrev:          hasPrev,
			next:             next,
			hasNext:          hasNext,
			toEnd:            linesToEnd(entries, endLine),
			blankAfter:       gapAfter(entries, i, endLine),
			document:         document,
			containerAllowed: sink != nil,
		})
		if !ok {
			continue
		}

		ann := any(items[i]).(*ast.Annotation)
		if t.container {
			sink.Attach(ann)
		} else {
			target, ok := any(items[t.index]).(ast.Annotatable)
			if !ok {
				continue
			}
			target.Attach(ann)
		}
		moved[i] = true
	}

	if len(moved) == 0 {
		return items
	}
	kept := make([]T, 0, len(items)-len(moved))
	for i, it := range items {
		if !moved[i] {
			kept = append(kept, it)
		}
	}
	return kept
}

package ast

import "sort"

// Annotations returns every annotation in doc, attached or not, ordered by
// start position. Closing annotations of verbatim blocks are part of their
// block and are not listed.
func Annotations(doc *Document) []*Annotation {
	var out []*Annotation
	Inspect(doc, func(n Node) {
		if a, ok := n.(*Annotation); ok {
			out = append(out, a)
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location.Start.Before(out[j].Location.Start)
	})
	return out
}

// NextAnnotation returns the first annotation starting after pos, wrapping
// to the first annotation of the document.
func NextAnnotation(doc *Document, pos Position) (*Annotation, bool) {
	all := Annotations(doc)
	if len(all) == 0 {
		return nil, false
	}
	for _, a := range all {
		if a.Location.Start.After(pos) {
			return a, true
		}
	}
	return all[0], true
}

// PreviousAnnotation returns the last annotation ending before pos,
// wrapping to the last annotation of the document.
func PreviousAnnotation(doc *Document, pos Position) (*Annotation, bool) {
	all := Annotations(doc)
	if len(all) == 0 {
		return nil, false
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Location.End.Before(pos) {
			return all[i], true
		}
	}
	return all[len(all)-1], true
}

// FindAnnotationByLabel returns the first annotation, in source order,
// whose label equals label.
func FindAnnotationByLabel(doc *Document, label string) (*Annotation, bool) {
	for _, a := range Annotations(doc) {
		if a.Label.Value == label {
			return a, true
		}
	}
	return nil, false
}

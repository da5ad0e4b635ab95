package ast

import (
	"fmt"
	"sort"
)

// Position is a zero-based line and byte column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func NewPosition(line, column int) Position {
	return Position{Line: line, Column: column}
}

// Compare returns -1, 0 or 1 depending on whether p sorts before, equal
// to, or after other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

func (p Position) Before(other Position) bool { return p.Compare(other) < 0 }

func (p Position) After(other Position) bool { return p.Compare(other) > 0 }

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range into the source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Len() int { return s.End - s.Start }

// Range locates a node in the source both as bytes and as line/column.
type Range struct {
	Span  Span     `json:"span"`
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func NewRange(span Span, start, end Position) Range {
	return Range{Span: span, Start: start, End: end}
}

// IsZero reports whether r is the zero range, used for nodes built by hand
// without source positions.
func (r Range) IsZero() bool {
	return r == Range{}
}

// Contains reports whether pos lies inside r. Both ends are inclusive so a
// cursor placed right after the last character still hits the node.
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.Start) && !pos.After(r.End)
}

// ContainsRange reports whether other lies fully inside r.
func (r Range) ContainsRange(other Range) bool {
	return r.Span.Start <= other.Span.Start && other.Span.End <= r.Span.End
}

func (r Range) Overlaps(other Range) bool {
	return r.Span.Start < other.Span.End && other.Span.Start < r.Span.End
}

func (r Range) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}

// BoundingBox returns the smallest range covering every given range. Zero
// ranges are ignored. ok is false when nothing remains.
func BoundingBox(ranges ...Range) (out Range, ok bool) {
	for _, r := range ranges {
		if r.IsZero() {
			continue
		}
		if !ok {
			out, ok = r, true
			continue
		}
		if r.Start.Before(out.Start) {
			out.Start = r.Start
			out.Span.Start = r.Span.Start
		}
		if r.End.After(out.End) {
			out.End = r.End
			out.Span.End = r.Span.End
		}
	}
	return out, ok
}

// SourceMap converts byte offsets into positions. It is built once per
// source; each lookup is a binary search over line starts.
type SourceMap struct {
	lineStarts []int
	size       int
}

func NewSourceMap(source string) *SourceMap {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceMap{lineStarts: starts, size: len(source)}
}

// Position maps offset to its line and column. Offsets past the end clamp
// to the end of the source.
func (m *SourceMap) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > m.size {
		offset = m.size
	}
	line := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1
	return Position{Line: line, Column: offset - m.lineStarts[line]}
}

func (m *SourceMap) Range(span Span) Range {
	return Range{Span: span, Start: m.Position(span.Start), End: m.Position(span.End)}
}

// Offset is the inverse of Position. ok is false for positions outside the
// source.
func (m *SourceMap) Offset(pos Position) (offset int, ok bool) {
	if pos.Line < 0 || pos.Line >= len(m.lineStarts) || pos.Column < 0 {
		return 0, false
	}
	offset = m.lineStarts[pos.Line] + pos.Column
	if offset > m.size {
		return 0, false
	}
	return offset, true
}

func (m *SourceMap) LineCount() int { return len(m.lineStarts) }

package ast

import "fmt"

// VerbatimMode tells how verbatim content was indented in the source.
type VerbatimMode int

const (
	// VerbatimInflow content is indented relative to its subject line.
	VerbatimInflow VerbatimMode = iota
	// VerbatimFullwidth content sits at the subject's own column.
	VerbatimFullwidth
)

func (m VerbatimMode) String() string {
	if m == VerbatimFullwidth {
		return "fullwidth"
	}
	return "inflow"
}

// VerbatimGroup is one subject line and the content lines under it.
type VerbatimGroup struct {
	Subject  TextContent
	Children VerbatimContainer
}

// Verbatim is an opaque block: one or more groups closed by a single data
// annotation. Its content is never parsed as Lex.
type Verbatim struct {
	Groups   []VerbatimGroup
	Closing  *Annotation
	Mode     VerbatimMode
	Location Range
	annotations
}

func (b *Verbatim) Type() NodeType  { return NodeVerbatim }
func (b *Verbatim) Range() Range    { return b.Location }
func (b *Verbatim) sessionContent() {}
func (b *Verbatim) contentElement() {}

// Accept visits the block and its content lines. The closing annotation is
// part of the block and is reached through Closing, not visited.
func (b *Verbatim) Accept(v Visitor) {
	v.VisitVerbatim(b)
	for _, a := range b.Annotations {
		a.Accept(v)
	}
	for _, g := range b.Groups {
		for _, line := range g.Children.Lines() {
			line.Accept(v)
		}
	}
}

func (b *Verbatim) String() string {
	subject := ""
	if len(b.Groups) > 0 {
		subject = b.Groups[0].Subject.String()
	}
	return fmt.Sprintf("VerbatimBlock %q (%s, %d groups)", truncate(subject), b.Mode, len(b.Groups))
}

// Subject returns the subject of the first group.
func (b *Verbatim) Subject() TextContent {
	if len(b.Groups) == 0 {
		return TextContent{}
	}
	return b.Groups[0].Subject
}

// VerbatimLine is one opaque content line, already stripped of the
// indentation wall.
type VerbatimLine struct {
	Content  TextContent
	Location Range
}

func (l *VerbatimLine) Type() NodeType   { return NodeVerbatimLine }
func (l *VerbatimLine) Range() Range     { return l.Location }
func (l *VerbatimLine) Accept(v Visitor) { v.VisitVerbatimLine(l) }
func (l *VerbatimLine) String() string {
	return fmt.Sprintf("VerbatimLine %q", truncate(l.Content.String()))
}

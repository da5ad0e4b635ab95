package ast

import (
	"fmt"
	"strings"
)

// Session is a titled container. Its title sits at the same indentation as
// its siblings; its children are one level deeper.
type Session struct {
	Title    TextContent
	Children SessionContainer
	Location Range
	annotations
}

func NewSession(title TextContent, children ...SessionContent) *Session {
	return &Session{Title: title, Children: NewSessionContainer(children...)}
}

func (s *Session) Type() NodeType { return NodeSession }
func (s *Session) Range() Range   { return s.Location }
func (s *Session) sessionContent() {}

func (s *Session) Accept(v Visitor) {
	v.VisitSession(s)
	for _, a := range s.Annotations {
		a.Accept(v)
	}
	for _, child := range s.Children.Items() {
		child.Accept(v)
	}
}

func (s *Session) String() string {
	return fmt.Sprintf("Session %q", truncate(s.Title.String()))
}

// Paragraph is a run of text lines.
type Paragraph struct {
	Lines    []*TextLine
	Location Range
	annotations
}

func NewParagraph(lines ...*TextLine) *Paragraph {
	return &Paragraph{Lines: lines}
}

func (p *Paragraph) Type() NodeType  { return NodeParagraph }
func (p *Paragraph) Range() Range    { return p.Location }
func (p *Paragraph) sessionContent() {}
func (p *Paragraph) contentElement() {}

func (p *Paragraph) Accept(v Visitor) {
	v.VisitParagraph(p)
	for _, a := range p.Annotations {
		a.Accept(v)
	}
	for _, line := range p.Lines {
		line.Accept(v)
	}
}

func (p *Paragraph) String() string {
	if len(p.Lines) == 0 {
		return "Paragraph"
	}
	return fmt.Sprintf("Paragraph %q (%d lines)", truncate(p.Lines[0].Content.String()), len(p.Lines))
}

// Text joins the paragraph lines with newlines.
func (p *Paragraph) Text() string {
	lines := make([]string, len(p.Lines))
	for i, line := range p.Lines {
		lines[i] = line.Content.String()
	}
	return strings.Join(lines, "\n")
}

// TextLine is a single line of a paragraph.
type TextLine struct {
	Content  TextContent
	Location Range
}

func (l *TextLine) Type() NodeType   { return NodeTextLine }
func (l *TextLine) Range() Range     { return l.Location }
func (l *TextLine) Accept(v Visitor) { v.VisitTextLine(l) }
func (l *TextLine) String() string   { return fmt.Sprintf("TextLine %q", truncate(l.Content.String())) }

// Definition is a subject immediately followed by indented content.
type Definition struct {
	Subject  TextContent
	Children GeneralContainer
	Location Range
	annotations
}

func NewDefinition(subject TextContent, children ...ContentElement) *Definition {
	return &Definition{Subject: subject, Children: NewGeneralContainer(children...)}
}

func (d *Definition) Type() NodeType  { return NodeDefinition }
func (d *Definition) Range() Range    { return d.Location }
func (d *Definition) sessionContent() {}
func (d *Definition) contentElement() {}

func (d *Definition) Accept(v Visitor) {
	v.VisitDefinition(d)
	for _, a := range d.Annotations {
		a.Accept(v)
	}
	for _, child := range d.Children.Items() {
		child.Accept(v)
	}
}

func (d *Definition) String() string {
	return fmt.Sprintf("Definition %q", truncate(d.Subject.String()))
}

const maxLabelWidth = 50

func truncate(s string) string {
	if len(s) <= maxLabelWidth {
		return s
	}
	cut := maxLabelWidth
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

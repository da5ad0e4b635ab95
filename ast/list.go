package ast

import "fmt"

// MarkerStyle is the numbering scheme of a list marker.
type MarkerStyle int

const (
	MarkerPlain MarkerStyle = iota // "-"
	MarkerNumerical
	MarkerAlphabetical
	MarkerRoman
)

func (s MarkerStyle) String() string {
	switch s {
	case MarkerNumerical:
		return "numerical"
	case MarkerAlphabetical:
		return "alphabetical"
	case MarkerRoman:
		return "roman"
	}
	return "plain"
}

// MarkerSeparator is the punctuation that closes an ordered marker.
type MarkerSeparator int

const (
	SeparatorNone        MarkerSeparator = iota
	SeparatorPeriod                      // 1.
	SeparatorParenthesis                 // 1)
	SeparatorDoubleParens                // (1)
)

// MarkerForm distinguishes "1." from "1.2.3".
type MarkerForm int

const (
	FormShort MarkerForm = iota
	FormExtended
)

// ListMarker describes the marker that opens a list item line.
type ListMarker struct {
	Text      string          `json:"text"`
	Style     MarkerStyle     `json:"style"`
	Separator MarkerSeparator `json:"separator"`
	Form      MarkerForm      `json:"form"`
}

// List is a run of two or more list items.
type List struct {
	Items    ListContainer
	Location Range
	annotations
}

func NewList(items ...*ListItem) *List {
	return &List{Items: NewListContainer(items...)}
}

func (l *List) Type() NodeType  { return NodeList }
func (l *List) Range() Range    { return l.Location }
func (l *List) sessionContent() {}
func (l *List) contentElement() {}

func (l *List) Accept(v Visitor) {
	v.VisitList(l)
	for _, a := range l.Annotations {
		a.Accept(v)
	}
	for _, item := range l.Items.Items() {
		item.Accept(v)
	}
}

func (l *List) String() string {
	return fmt.Sprintf("List (%d items)", l.Items.Len())
}

// ListItem is one marker line plus optional nested content.
type ListItem struct {
	Marker   ListMarker
	Text     TextContent
	Children GeneralContainer
	Location Range
	annotations
}

func NewListItem(marker string, text TextContent, children ...ContentElement) *ListItem {
	return &ListItem{
		Marker:   ListMarker{Text: marker},
		Text:     text,
		Children: NewGeneralContainer(children...),
	}
}

func (i *ListItem) Type() NodeType { return NodeListItem }
func (i *ListItem) Range() Range   { return i.Location }

func (i *ListItem) Accept(v Visitor) {
	v.VisitListItem(i)
	for _, a := range i.Annotations {
		a.Accept(v)
	}
	for _, child := range i.Children.Items() {
		child.Accept(v)
	}
}

func (i *ListItem) String() string {
	return fmt.Sprintf("ListItem %s %q", i.Marker.Text, truncate(i.Text.String()))
}

package ast

import "fmt"

// PolicyError reports a node that a container's nesting policy rejects.
type PolicyError struct {
	Container string
	Node      NodeType
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s cannot hold a %s", e.Container, e.Node)
}

// SessionContainer holds the children of a session. It is the only
// container that accepts nested sessions.
type SessionContainer struct {
	items []SessionContent
}

func NewSessionContainer(items ...SessionContent) SessionContainer {
	return SessionContainer{items: items}
}

func (c SessionContainer) Items() []SessionContent { return c.items }

func (c SessionContainer) Len() int { return len(c.items) }

func (c *SessionContainer) Append(items ...SessionContent) {
	c.items = append(c.items, items...)
}

// Replace swaps the whole child list.
func (c *SessionContainer) Replace(items []SessionContent) { c.items = items }

// GeneralContainer holds the children of definitions, annotations and
// list items.
type GeneralContainer struct {
	items []ContentElement
}

func NewGeneralContainer(items ...ContentElement) GeneralContainer {
	return GeneralContainer{items: items}
}

// GeneralContainerFrom narrows arbitrary nodes into a GeneralContainer. It
// fails on the first node that is not a ContentElement, sessions included.
func GeneralContainerFrom(nodes []Node) (GeneralContainer, error) {
	items := make([]ContentElement, 0, len(nodes))
	for _, n := range nodes {
		el, err := NarrowContent(n)
		if err != nil {
			return GeneralContainer{}, err
		}
		items = append(items, el)
	}
	return GeneralContainer{items: items}, nil
}

func (c GeneralContainer) Items() []ContentElement { return c.items }

func (c GeneralContainer) Len() int { return len(c.items) }

func (c *GeneralContainer) Append(items ...ContentElement) {
	c.items = append(c.items, items...)
}

func (c *GeneralContainer) Replace(items []ContentElement) { c.items = items }

// ListContainer holds list items and nothing else.
type ListContainer struct {
	items []*ListItem
}

func NewListContainer(items ...*ListItem) ListContainer {
	return ListContainer{items: items}
}

func ListContainerFrom(nodes []Node) (ListContainer, error) {
	items := make([]*ListItem, 0, len(nodes))
	for _, n := range nodes {
		item, ok := n.(*ListItem)
		if !ok {
			return ListContainer{}, &PolicyError{Container: "ListContainer", Node: n.Type()}
		}
		items = append(items, item)
	}
	return ListContainer{items: items}, nil
}

func (c ListContainer) Items() []*ListItem { return c.items }

func (c ListContainer) Len() int { return len(c.items) }

// VerbatimContainer holds the opaque lines of a verbatim group.
type VerbatimContainer struct {
	lines []*VerbatimLine
}

func NewVerbatimContainer(lines ...*VerbatimLine) VerbatimContainer {
	return VerbatimContainer{lines: lines}
}

func VerbatimContainerFrom(nodes []Node) (VerbatimContainer, error) {
	lines := make([]*VerbatimLine, 0, len(nodes))
	for _, n := range nodes {
		line, ok := n.(*VerbatimLine)
		if !ok {
			return VerbatimContainer{}, &PolicyError{Container: "VerbatimContainer", Node: n.Type()}
		}
		lines = append(lines, line)
	}
	return VerbatimContainer{lines: lines}, nil
}

func (c VerbatimContainer) Lines() []*VerbatimLine { return c.lines }

func (c VerbatimContainer) Len() int { return len(c.lines) }

// NarrowContent converts a node into a ContentElement, rejecting sessions
// and nodes that only live inside dedicated containers.
func NarrowContent(n Node) (ContentElement, error) {
	if el, ok := n.(ContentElement); ok {
		return el, nil
	}
	return nil, &PolicyError{Container: "GeneralContainer", Node: n.Type()}
}


package grammar

import (
	"fmt"
	"strings"

	"github.com/lex-fmt/core-sub004/internal/lines"
)

// NodeType tags a ParseNode.
type NodeType int

const (
	NodeDocument NodeType = iota
	NodeParagraph
	NodeSession
	NodeDefinition
	NodeList
	NodeListItem
	NodeAnnotation
	NodeVerbatim
	NodeBlankLineGroup
)

var nodeTypeNames = [...]string{
	NodeDocument:       "Document",
	NodeParagraph:      "Paragraph",
	NodeSession:        "Session",
	NodeDefinition:     "Definition",
	NodeList:           "List",
	NodeListItem:       "ListItem",
	NodeAnnotation:     "Annotation",
	NodeVerbatim:       "VerbatimBlock",
	NodeBlankLineGroup: "BlankLineGroup",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// ParseNode is the intermediate tree handed to the AST builder.
//
//	Paragraph       Header = its lines
//	Session         Header = [title]            Children = body
//	Definition      Header = [subject]          Children = body
//	List            Children = ListItems
//	ListItem        Header = [marker line]      Children = nested body
//	Annotation      Header = [start line]       Children = body, End = closing "::"
//	VerbatimBlock   Verbatim payload
//	BlankLineGroup  Header = the blank lines
type ParseNode struct {
	Type     NodeType
	Header   []*lines.Line
	Children []*ParseNode
	End      *lines.Line
	Verbatim *VerbatimPayload
}

// VerbatimPayload holds the raw groups of a verbatim block. Content is not
// parsed.
type VerbatimPayload struct {
	Groups  []VerbatimGroup
	Closing *lines.Line
}

// VerbatimGroup is a subject line and everything up to the next subject or
// the closing data line: flat lines, blank lines, or indented containers.
type VerbatimGroup struct {
	Subject *lines.Line
	Content []lines.Entry
}

// HasContainer reports whether the group's content is indented.
func (g VerbatimGroup) HasContainer() bool {
	for _, e := range g.Content {
		if _, ok := e.(*lines.Container); ok {
			return true
		}
	}
	return false
}

// Dump renders the tree for debugging and tests, one node per line.
func Dump(n *ParseNode) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *ParseNode, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Type.String())
	if n.Verbatim != nil {
		fmt.Fprintf(sb, " groups=%d", len(n.Verbatim.Groups))
	} else if len(n.Header) > 0 && n.Type != NodeBlankLineGroup {
		fmt.Fprintf(sb, " lines=%d", len(n.Header))
	}
	sb.WriteString("\n")
	for _, c := range n.Children {
		dump(sb, c, depth+1)
	}
}

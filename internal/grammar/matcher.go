package grammar

import "github.com/lex-fmt/core-sub004/internal/lines"

// Rules are tried in this order at every position of a sibling run. The
// first rule that matches consumes its entries and matching resumes after
// them. "C" is an indented container, "*" a run of blank lines.
//
//	rule                       shape
//	-------------------------  --------------------------------------------
//	verbatim                   subject (C | flat | subject)* data-line
//	annotation_block_with_end  start C end
//	annotation_block           start C
//	annotation_single          start
//	list                       (item C?){2,}
//	definition                 subject|paragraph C
//	session                    subject|paragraph|item * C
//	paragraph                  line+  (stops before a line that heads a C)
//	blank_line_group           blank+
//
// Paragraph accepts any non-blank line, so every line matches some rule.
// A container that no rule consumed has no head line; its children are
// matched and spliced into the current level.
//
// Sessions only open at the start of a level or after a blank group, a
// session, or any node that closed a container. Elsewhere the same lines
// fall through to the paragraph rule. A session matched inside a
// definition, annotation or list item is kept so that the builder can
// reject it.
type rule struct {
	name  string
	match func(lv *level, i int) (*ParseNode, int, bool)
}

// level is one sibling run being matched.
type level struct {
	entries []lines.Entry
	prev    *ParseNode
}

func (lv *level) sessionMayStart() bool {
	p := lv.prev
	return p == nil || p.Type == NodeBlankLineGroup || p.Type == NodeSession || len(p.Children) > 0
}

var rules []rule

func init() {
	rules = []rule{
		{"verbatim", matchVerbatim},
		{"annotation_block_with_end", matchAnnotationBlockWithEnd},
		{"annotation_block", matchAnnotationBlock},
		{"annotation_single", matchAnnotationSingle},
		{"list", matchList},
		{"definition", matchDefinition},
		{"session", matchSession},
		{"paragraph", matchParagraph},
		{"blank_line_group", matchBlankLineGroup},
	}
}

// Parse matches the whole line tree and returns the document node.
func Parse(root *lines.Container) *ParseNode {
	return &ParseNode{Type: NodeDocument, Children: parseLevel(root.Entries)}
}

func parseLevel(entries []lines.Entry) []*ParseNode {
	lv := &level{entries: entries}
	var out []*ParseNode
	for i := 0; i < len(entries); {
		if c, ok := entries[i].(*lines.Container); ok {
			out = append(out, parseLevel(c.Entries)...)
			i++
		} else {
			var node *ParseNode
			node, i = lv.matchAt(i)
			out = append(out, node)
		}
		if len(out) > 0 {
			lv.prev = out[len(out)-1]
		}
	}
	return out
}

func (lv *level) matchAt(i int) (*ParseNode, int) {
	for _, r := range rules {
		if node, next, ok := r.match(lv, i); ok {
			return node, next
		}
	}
	// matchParagraph and matchBlankLineGroup cover every line
	panic("grammar: no rule matched line " + lv.entries[i].(*lines.Line).String())
}

func lineAt(entries []lines.Entry, i int) (*lines.Line, bool) {
	if i < 0 || i >= len(entries) {
		return nil, false
	}
	l, ok := entries[i].(*lines.Line)
	return l, ok
}

func containerAt(entries []lines.Entry, i int) (*lines.Container, bool) {
	if i < 0 || i >= len(entries) {
		return nil, false
	}
	c, ok := entries[i].(*lines.Container)
	return c, ok
}

func isType(entries []lines.Entry, i int, types ...lines.LineType) bool {
	l, ok := lineAt(entries, i)
	if !ok {
		return false
	}
	for _, t := range types {
		if l.Type == t {
			return true
		}
	}
	return false
}

func isBlank(entries []lines.Entry, i int) bool {
	return isType(entries, i, lines.BlankLine)
}

func skipBlanks(entries []lines.Entry, i int) int {
	for isBlank(entries, i) {
		i++
	}
	return i
}

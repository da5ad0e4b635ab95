package grammar

import "github.com/lex-fmt/core-sub004/internal/lines"

var (
	definitionHeads = []lines.LineType{lines.SubjectLine, lines.SubjectOrListItemLine, lines.ParagraphLine}
	sessionHeads    = []lines.LineType{lines.SubjectLine, lines.SubjectOrListItemLine, lines.ParagraphLine, lines.ListLine}
	itemHeads       = []lines.LineType{lines.ListLine, lines.SubjectOrListItemLine}
)

// matchVerbatim looks for a subject line whose group runs, through any
// number of further subject groups, to a data line at the same level.
// Everything between is kept raw.
func matchVerbatim(lv *level, i int) (*ParseNode, int, bool) {
	entries := lv.entries
	subject, ok := lineAt(entries, i)
	if !ok || !subject.Type.IsSubject() {
		return nil, 0, false
	}

	payload := &VerbatimPayload{}
	group := VerbatimGroup{Subject: subject}
	cursor := i + 1
	for {
		for isBlank(entries, cursor) {
			group.Content = append(group.Content, entries[cursor])
			cursor++
		}
		if cursor >= len(entries) {
			return nil, 0, false
		}

		if c, ok := containerAt(entries, cursor); ok {
			group.Content = append(group.Content, c)
			cursor = skipBlanks(entries, cursor+1)
			if !isType(entries, cursor, lines.DataLine) {
				l, ok := lineAt(entries, cursor)
				if !ok || !l.Type.IsSubject() {
					return nil, 0, false
				}
			}
			continue
		}

		l := entries[cursor].(*lines.Line)
		switch {
		case l.Type == lines.DataLine:
			payload.Groups = append(payload.Groups, group)
			payload.Closing = l
			return &ParseNode{Type: NodeVerbatim, Verbatim: payload}, cursor + 1, true
		case l.Type.IsSubject():
			payload.Groups = append(payload.Groups, group)
			group = VerbatimGroup{Subject: l}
		default:
			group.Content = append(group.Content, l)
		}
		cursor++
	}
}

func matchAnnotationBlockWithEnd(lv *level, i int) (*ParseNode, int, bool) {
	entries := lv.entries
	if !isType(entries, i, lines.AnnotationStartLine) {
		return nil, 0, false
	}
	body, ok := containerAt(entries, i+1)
	if !ok {
		return nil, 0, false
	}
	end, ok := lineAt(entries, i+2)
	if !ok || end.Type != lines.AnnotationEndLine {
		return nil, 0, false
	}
	start := entries[i].(*lines.Line)
	return &ParseNode{
		Type:     NodeAnnotation,
		Header:   []*lines.Line{start},
		Children: parseLevel(body.Entries),
		End:      end,
	}, i + 3, true
}

func matchAnnotationBlock(lv *level, i int) (*ParseNode, int, bool) {
	entries := lv.entries
	if !isType(entries, i, lines.AnnotationStartLine) {
		return nil, 0, false
	}
	body, ok := containerAt(entries, i+1)
	if !ok {
		return nil, 0, false
	}
	start := entries[i].(*lines.Line)
	return &ParseNode{
		Type:     NodeAnnotation,
		Header:   []*lines.Line{start},
		Children: parseLevel(body.Entries),
	}, i + 2, true
}

func matchAnnotationSingle(lv *level, i int) (*ParseNode, int, bool) {
	entries := lv.entries
	start, ok := lineAt(entries, i)
	if !ok || start.Type != lines.AnnotationStartLine {
		return nil, 0, false
	}
	return &ParseNode{Type: NodeAnnotation, Header: []*lines.Line{start}}, i + 1, true
}

// matchList needs at least two consecutive items. A single marker line is
// left to the definition and paragraph rules.
func matchList(lv *level, i int) (*ParseNode, int, bool) {
	entries := lv.entries
	var items []*ParseNode
	cursor := i
	for isType(entries, cursor, itemHeads...) {
		item := &ParseNode{Type: NodeListItem, Header: []*lines.Line{entries[cursor].(*lines.Line)}}
		cursor++
		if c, ok := containerAt(entries, cursor); ok {
			item.Children = parseLevel(c.Entries)
			cursor++
		}
		items = append(items, item)
	}
	if len(items) < 2 {
		return nil, 0, false
	}
	return &ParseNode{Type: NodeList, Children: items}, cursor, true
}

func matchDefinition(lv *level, i int) (*ParseNode, int, bool) {
	entries := lv.entries
	if !isType(entries, i, definitionHeads...) {
		return nil, 0, false
	}
	body, ok := containerAt(entries, i+1)
	if !ok {
		return nil, 0, false
	}
	return &ParseNode{
		Type:     NodeDefinition,
		Header:   []*lines.Line{entries[i].(*lines.Line)},
		Children: parseLevel(body.Entries),
	}, i + 2, true
}

func matchSession(lv *level, i int) (*ParseNode, int, bool) {
	entries := lv.entries
	if !lv.sessionMayStart() || !isType(entries, i, sessionHeads...) || !isBlank(entries, i+1) {
		return nil, 0, false
	}
	cursor := skipBlanks(entries, i+1)
	body, ok := containerAt(entries, cursor)
	if !ok {
		return nil, 0, false
	}
	return &ParseNode{
		Type:     NodeSession,
		Header:   []*lines.Line{entries[i].(*lines.Line)},
		Children: parseLevel(body.Entries),
	}, cursor + 1, true
}

// matchParagraph takes a run of non-blank lines. After the first line it
// stops at an annotation start and at any line that heads a container, so
// the definition rule can claim that line.
func matchParagraph(lv *level, i int) (*ParseNode, int, bool) {
	entries := lv.entries
	first, ok := lineAt(entries, i)
	if !ok || first.Type == lines.BlankLine {
		return nil, 0, false
	}
	node := &ParseNode{Type: NodeParagraph, Header: []*lines.Line{first}}
	cursor := i + 1
	for {
		l, ok := lineAt(entries, cursor)
		if !ok || l.Type == lines.BlankLine || l.Type == lines.AnnotationStartLine {
			break
		}
		if _, heads := containerAt(entries, cursor+1); heads {
			break
		}
		node.Header = append(node.Header, l)
		cursor++
	}
	return node, cursor, true
}

func matchBlankLineGroup(lv *level, i int) (*ParseNode, int, bool) {
	entries := lv.entries
	node := &ParseNode{Type: NodeBlankLineGroup}
	cursor := i
	for isBlank(entries, cursor) {
		node.Header = append(node.Header, entries[cursor].(*lines.Line))
		cursor++
	}
	if cursor == i {
		return nil, 0, false
	}
	return node, cursor, true
}

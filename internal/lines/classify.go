package lines

import (
	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/lexer"
)

// Classify builds a Line from the raw tokens of one source line. Checks
// run in priority order:
//
//	blank              only space and the terminator
//	annotation end     a lone "::"
//	annotation start   ":: header ::" plus optional trailing text
//	data               ":: header" with no closing marker
//	subject-or-item    list marker and a trailing colon
//	list item          list marker
//	subject            trailing colon
//	paragraph          anything else
func Classify(source string, tokens []lexer.Token) *Line {
	l := &Line{Tokens: tokens, Type: ParagraphLine}
	for l.Depth < len(tokens) && tokens[l.Depth].Kind == lexer.Indentation {
		l.Depth++
	}

	content := trimSpace(tokens)
	switch {
	case len(content) == 0:
		l.Type = BlankLine
		return l
	case len(content) == 1 && content[0].Kind == lexer.LexMarker:
		l.Type = AnnotationEndLine
		return l
	}

	if classifyAnnotation(source, l) {
		return l
	}

	marker := parseMarker(source, tokens)
	colon := endsWithColon(tokens)
	switch {
	case marker != nil && colon:
		l.Type, l.Marker = SubjectOrListItemLine, marker
	case marker != nil:
		l.Type, l.Marker = ListLine, marker
	case colon:
		l.Type = SubjectLine
	}
	return l
}

// classifyAnnotation recognizes start and data lines. A header holding
// parameters but no label is recorded on the line as a parse error and the
// line stays prose.
func classifyAnnotation(source string, l *Line) bool {
	tokens := l.Tokens
	first := 0
	for first < len(tokens) && tokens[first].Kind.IsSpace() {
		first++
	}
	if first >= len(tokens) || tokens[first].Kind != lexer.LexMarker {
		return false
	}
	if first+1 < len(tokens) && tokens[first+1].Kind != lexer.Whitespace {
		return false
	}

	second := -1
	for i := first + 1; i < len(tokens); i++ {
		if tokens[i].Kind == lexer.LexMarker {
			second = i
			break
		}
	}

	var header []lexer.Token
	if second >= 0 {
		header = tokens[first+1 : second]
	} else {
		for _, tok := range tokens[first+1:] {
			if tok.Kind != lexer.BlankLine {
				header = append(header, tok)
			}
		}
		if len(header) == 0 {
			return false
		}
	}

	h := parseHeader(source, header)
	if !h.HasLabel {
		if len(h.Params) > 0 {
			l.Err = &ast.ParseError{
				Message: "annotation parameters must follow a label",
				Offset:  h.Params[0].Span.Start,
			}
		}
		return false
	}

	l.Header = &h
	if second >= 0 {
		l.Type = AnnotationStartLine
		l.Trailing = trimSpace(tokens[second+1:])
	} else {
		l.Type = DataLine
	}
	return true
}

// endsWithColon ignores trailing space and the terminator.
func endsWithColon(tokens []lexer.Token) bool {
	for i := len(tokens) - 1; i >= 0; i-- {
		switch k := tokens[i].Kind; {
		case k == lexer.BlankLine || k.IsSpace():
			continue
		case k == lexer.Colon:
			return true
		default:
			return false
		}
	}
	return false
}

package lines

import (
	"strings"

	"github.com/lex-fmt/core-sub004/lexer"
)

// Header is the analyzed content between the markers of an annotation.
type Header struct {
	Label     string
	LabelSpan lexer.Span
	HasLabel  bool
	Params    []Param
}

// Param is one key[=value] pair. Quoted values keep their quotes.
type Param struct {
	Key      string
	Value    string
	HasValue bool
	Span     lexer.Span
}

// parseHeader reads a label followed by parameters. The label is a run of
// words, numbers, dashes and periods; it stops before a component that is
// followed by "=", which starts the first parameter.
func parseHeader(source string, tokens []lexer.Token) Header {
	var h Header
	i := 0
	for i < len(tokens) && tokens[i].Kind.IsSpace() {
		i++
	}

	var label []lexer.Token
	for i < len(tokens) {
		tok := tokens[i]
		if tok.Kind.IsSpace() {
			i++
			continue
		}
		if !isLabelComponent(tok.Kind) {
			break
		}
		j := i + 1
		for j < len(tokens) && isLabelComponent(tokens[j].Kind) {
			j++
		}
		for j < len(tokens) && tokens[j].Kind.IsSpace() {
			j++
		}
		if j < len(tokens) && tokens[j].Kind == lexer.Equals {
			break
		}
		label = append(label, tok)
		i++
	}
	if span, ok := lexer.BoundingSpan(label); ok {
		h.HasLabel = true
		h.LabelSpan = span
		h.Label = strings.TrimSpace(source[span.Start:span.End])
	}

	for i < len(tokens) {
		p, next, ok := parseParam(source, tokens, i)
		if !ok {
			break
		}
		h.Params = append(h.Params, p)
		i = next
	}
	return h
}

func parseParam(source string, tokens []lexer.Token, i int) (Param, int, bool) {
	for i < len(tokens) && (tokens[i].Kind.IsSpace() || tokens[i].Kind == lexer.Comma) {
		i++
	}

	keyStart := i
	for i < len(tokens) && isLabelComponent(tokens[i].Kind) {
		i++
	}
	if i == keyStart {
		return Param{}, i, false
	}
	keySpan, _ := lexer.BoundingSpan(tokens[keyStart:i])
	p := Param{
		Key:  strings.TrimSpace(source[keySpan.Start:keySpan.End]),
		Span: keySpan,
	}

	for i < len(tokens) && tokens[i].Kind.IsSpace() {
		i++
	}
	if i >= len(tokens) || tokens[i].Kind != lexer.Equals {
		return p, i, true
	}
	i++
	for i < len(tokens) && tokens[i].Kind.IsSpace() {
		i++
	}

	valueStart := i
	quoted := i < len(tokens) && tokens[i].Kind == lexer.Quote
	if quoted {
		i++
		for i < len(tokens) && tokens[i].Kind != lexer.Quote {
			i++
		}
		if i < len(tokens) {
			i++
		}
	} else {
		for i < len(tokens) && !endsValue(tokens[i].Kind) {
			if tokens[i].Kind.IsSpace() {
				j := i
				for j < len(tokens) && tokens[j].Kind.IsSpace() {
					j++
				}
				if j >= len(tokens) || endsValue(tokens[j].Kind) {
					break
				}
			}
			i++
		}
	}

	if valueSpan, ok := lexer.BoundingSpan(tokens[valueStart:i]); ok {
		p.HasValue = true
		p.Value = source[valueSpan.Start:valueSpan.End]
		if !quoted {
			p.Value = strings.TrimSpace(p.Value)
		}
		p.Span = p.Span.Cover(valueSpan)
	}
	return p, i, true
}

func isLabelComponent(k lexer.TokenKind) bool {
	switch k {
	case lexer.Text, lexer.Dash, lexer.Number, lexer.Period:
		return true
	}
	return false
}

func endsValue(k lexer.TokenKind) bool {
	return k == lexer.Comma || k == lexer.LexMarker || k == lexer.BlankLine
}

package lines

import (
	"github.com/lex-fmt/core-sub004/ast"
	"github.com/lex-fmt/core-sub004/lexer"
)

// Marker locates a list marker inside Line.Tokens.
type Marker struct {
	// Start and End bound the marker tokens; Body is the first token after
	// the whitespace that follows the marker.
	Start, End, Body int

	Style     ast.MarkerStyle
	Separator ast.MarkerSeparator
	Form      ast.MarkerForm
}

// Text returns the marker as written, e.g. "1." or "(a)".
func (m *Marker) Text(source string, tokens []lexer.Token) string {
	return lexer.Detokenize(source, tokens[m.Start:m.End])
}

// parseMarker recognizes, after leading space:
//
//	-            plain
//	(seg)        double parens
//	seg.seg[.seg...][.|)]   extended
//	seg. | seg)  short
//
// where seg is a number, a single letter or an uppercase roman numeral.
// The marker must be followed by whitespace.
func parseMarker(source string, tokens []lexer.Token) *Marker {
	i := 0
	for i < len(tokens) && tokens[i].Kind.IsSpace() {
		i++
	}
	if i >= len(tokens) {
		return nil
	}

	finish := func(end int, style ast.MarkerStyle, sep ast.MarkerSeparator, form ast.MarkerForm) *Marker {
		body := end
		for body < len(tokens) && tokens[body].Kind == lexer.Whitespace {
			body++
		}
		if body == end {
			return nil
		}
		return &Marker{Start: i, End: end, Body: body, Style: style, Separator: sep, Form: form}
	}

	seg := func(j int) bool { return j < len(tokens) && isSegment(source, tokens[j]) }
	kind := func(j int) lexer.TokenKind {
		if j < len(tokens) {
			return tokens[j].Kind
		}
		return -1
	}

	if tokens[i].Kind == lexer.Dash {
		return finish(i+1, ast.MarkerPlain, ast.SeparatorNone, ast.FormShort)
	}

	if kind(i) == lexer.OpenParen && seg(i+1) && kind(i+2) == lexer.CloseParen {
		return finish(i+3, segmentStyle(source, tokens[i+1]), ast.SeparatorDoubleParens, ast.FormShort)
	}

	if !seg(i) {
		return nil
	}
	style := segmentStyle(source, tokens[i])

	j, segments := i+1, 1
	for kind(j) == lexer.Period && seg(j+1) {
		segments++
		j += 2
	}
	if segments >= 2 {
		sep := ast.SeparatorPeriod
		switch kind(j) {
		case lexer.CloseParen:
			sep = ast.SeparatorParenthesis
			j++
		case lexer.Period:
			j++
		}
		return finish(j, style, sep, ast.FormExtended)
	}

	switch kind(i + 1) {
	case lexer.Period:
		return finish(i+2, style, ast.SeparatorPeriod, ast.FormShort)
	case lexer.CloseParen:
		return finish(i+2, style, ast.SeparatorParenthesis, ast.FormShort)
	}
	return nil
}

func isSegment(source string, tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.Number:
		return true
	case lexer.Text:
		s := tok.Text(source)
		return isSingleLetter(s) || isRoman(s)
	}
	return false
}

func segmentStyle(source string, tok lexer.Token) ast.MarkerStyle {
	if tok.Kind == lexer.Number {
		return ast.MarkerNumerical
	}
	s := tok.Text(source)
	switch {
	case isSingleLetter(s):
		return ast.MarkerAlphabetical
	case isRoman(s):
		return ast.MarkerRoman
	}
	return ast.MarkerNumerical
}

func isSingleLetter(s string) bool {
	return len(s) == 1 && (s[0] >= 'a' && s[0] <= 'z' || s[0] >= 'A' && s[0] <= 'Z')
}

func isRoman(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'I', 'V', 'X', 'L', 'C', 'D', 'M':
		default:
			return false
		}
	}
	return true
}

// StartsWithMarker reports whether text opens with a list marker followed
// by whitespace.
func StartsWithMarker(text string) bool {
	return parseMarker(text, lexer.Tokenize(text)) != nil
}

package lexer

import "strings"

// Detokenize re-serializes tokens against the source they were read from.
// Synthetic tokens contribute nothing.
func Detokenize(source string, tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text(source))
	}
	return sb.String()
}

// Within returns the tokens whose spans lie inside span, in stream order.
// Zero-width synthetic tokens are dropped.
func Within(tokens []Token, span Span) []Token {
	var out []Token
	for _, tok := range tokens {
		if tok.Kind.IsSynthetic() {
			continue
		}
		if span.Contains(tok.Span) {
			out = append(out, tok)
		}
	}
	return out
}

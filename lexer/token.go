package lexer

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	Text            TokenKind = iota // any run not covered by another kind
	Whitespace                       // 1-3 spaces
	Indentation                      // one indentation unit: 4 spaces or a tab
	BlankLine                        // the line terminator ("\n" or "\r\n")
	LexMarker                        // "::"
	Dash                             // '-'
	Period                           // '.'
	OpenParen                        // '('
	CloseParen                       // ')'
	Colon                            // ':'
	Comma                            // ','
	Quote                            // '"'
	Equals                           // '='
	ExclamationMark                  // '!'
	QuestionMark                     // '?'
	Semicolon                        // ';'
	Number                           // ASCII digit run
	Indent                           // synthetic, zero width
	Dedent                           // synthetic, zero width
)

var kindNames = [...]string{
	Text:            "Text",
	Whitespace:      "Whitespace",
	Indentation:     "Indentation",
	BlankLine:       "BlankLine",
	LexMarker:       "LexMarker",
	Dash:            "Dash",
	Period:          "Period",
	OpenParen:       "OpenParen",
	CloseParen:      "CloseParen",
	Colon:           "Colon",
	Comma:           "Comma",
	Quote:           "Quote",
	Equals:          "Equals",
	ExclamationMark: "ExclamationMark",
	QuestionMark:    "QuestionMark",
	Semicolon:       "Semicolon",
	Number:          "Number",
	Indent:          "Indent",
	Dedent:          "Dedent",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsSynthetic reports whether the kind is produced by the indentation
// normalizer rather than read from the source.
func (k TokenKind) IsSynthetic() bool {
	return k == Indent || k == Dedent
}

// IsSpace reports whether the kind carries only horizontal space.
func (k TokenKind) IsSpace() bool {
	return k == Whitespace || k == Indentation
}

// Span is a half-open byte range [Start, End) into the source.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) IsEmpty() bool { return s.End <= s.Start }

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Cover returns the smallest span enclosing both spans.
func (s Span) Cover(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Token is a single lexical token. Tokens never own text; the text is
// always recovered from the source through the span.
type Token struct {
	Kind TokenKind
	Span Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Span)
}

// Text returns the source text covered by the token. Synthetic tokens
// cover nothing.
func (t Token) Text(source string) string {
	if t.Kind.IsSynthetic() || t.Span.IsEmpty() {
		return ""
	}
	return source[t.Span.Start:t.Span.End]
}

// BoundingSpan returns the span covering every non-synthetic token in
// tokens. ok is false when there is no such token.
func BoundingSpan(tokens []Token) (span Span, ok bool) {
	for _, tok := range tokens {
		if tok.Kind.IsSynthetic() {
			continue
		}
		if !ok {
			span, ok = tok.Span, true
			continue
		}
		span = span.Cover(tok.Span)
	}
	return span, ok
}

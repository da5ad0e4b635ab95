package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []TokenKind
	}{
		{
			name:     "flat document",
			input:    "a\nb\n",
			expected: []TokenKind{Text, BlankLine, Text, BlankLine},
		},
		{
			name:  "one level",
			input: "Term:\n    body\n",
			expected: []TokenKind{
				Text, Colon, BlankLine,
				Indent, Indentation, Text, BlankLine,
				Dedent,
			},
		},
		{
			name:  "two levels at once close together",
			input: "a\n        b\nc\n",
			expected: []TokenKind{
				Text, BlankLine,
				Indent, Indent, Indentation, Indentation, Text, BlankLine,
				Dedent, Dedent, Text, BlankLine,
			},
		},
		{
			name:  "blank lines do not change the level",
			input: "a\n    b\n\n    c\n",
			expected: []TokenKind{
				Text, BlankLine,
				Indent, Indentation, Text, BlankLine,
				BlankLine,
				Indentation, Text, BlankLine,
				Dedent,
			},
		},
		{
			name:  "dedent lands after blank lines",
			input: "a\n    b\n\nc\n",
			expected: []TokenKind{
				Text, BlankLine,
				Indent, Indentation, Text, BlankLine,
				BlankLine,
				Dedent, Text, BlankLine,
			},
		},
		{
			name:  "whitespace remainder is removed before text",
			input: "a\n      b\n",
			expected: []TokenKind{
				Text, BlankLine,
				Indent, Indentation, Text, BlankLine,
				Dedent,
			},
		},
		{
			name:  "whitespace remainder before punctuation is kept",
			input: "a\n      - b\n",
			expected: []TokenKind{
				Text, BlankLine,
				Indent, Indentation, Whitespace, Dash, Whitespace, Text, BlankLine,
				Dedent,
			},
		},
		{
			name:     "unindented whitespace is kept",
			input:    "  a\n",
			expected: []TokenKind{Whitespace, Text, BlankLine},
		},
		{
			name:  "indented blank line keeps its tokens",
			input: "a\n    \nb\n",
			expected: []TokenKind{
				Text, BlankLine,
				Indentation, BlankLine,
				Text, BlankLine,
			},
		},
		{
			name:     "empty",
			input:    "",
			expected: []TokenKind{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(Tokenize(tt.input))
			assert.Equal(t, tt.expected, kinds(got))
		})
	}
}

func TestNormalizeBalancesIndents(t *testing.T) {
	t.Parallel()
	input := "a\n    b\n        c\n    d\n            e\nf\n"
	depth := 0
	for _, tok := range Normalize(Tokenize(input)) {
		switch tok.Kind {
		case Indent:
			depth++
		case Dedent:
			depth--
		}
		assert.GreaterOrEqual(t, depth, 0)
	}
	assert.Equal(t, 0, depth)
}

func TestNormalizeRoundTrip(t *testing.T) {
	t.Parallel()
	input := "Intro:\n\n    :: todo ::\n        Body\n    ::\n\nText.\n"
	normalized := Normalize(Tokenize(input))
	assert.Equal(t, input, Detokenize(input, normalized))

	for _, tok := range normalized {
		if tok.Kind.IsSynthetic() {
			assert.True(t, tok.Span.IsEmpty())
		}
	}
}

func TestRemainderIsOnlyDroppedText(t *testing.T) {
	t.Parallel()
	input := "a\n      b\n"
	normalized := Normalize(Tokenize(input))
	assert.Equal(t, "a\n    b\n", Detokenize(input, normalized))
}

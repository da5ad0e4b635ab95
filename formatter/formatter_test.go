package formatter

import (
	"go/token"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/lex-fmt/core-sub004/internal"
	tt "github.com/lex-fmt/core-sub004/internal/types"
)

func init() {
	color.NoColor = true
}

func TestGenerateFormattedIssue(t *testing.T) {
	t.Parallel()
	code := internal.NewSourceCode("Intro\n\nSee [?] here.\n")

	issues := []tt.Issue{
		{
			Rule:     internal.IndeterminateRef,
			Filename: "test.lex",
			Severity: tt.SeverityWarning,
			Start:    token.Position{Line: 3, Column: 5},
			End:      token.Position{Line: 3, Column: 8},
			Message:  "reference [?] has no recognizable target",
			Note:     "references name a target",
		},
	}

	expected := `warning: inline.indeterminate-reference
 --> test.lex:3:5
  |
3 | See [?] here.
  |     ~~~
  = reference [?] has no recognizable target
  = note: references name a target

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestFormatMultiLineRange(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{
		Lines: []string{
			"Title",
			"    :: outer ::",
			"        body text",
			"    ::",
			"",
		},
	}

	issues := []tt.Issue{
		{
			Rule:     internal.DetachedAnnotation,
			Filename: "test.lex",
			Severity: tt.SeverityWarning,
			Start:    token.Position{Line: 2, Column: 5},
			End:      token.Position{Line: 5, Column: 1},
			Message:  `annotation "outer" is not attached to any element`,
		},
	}

	expected := `warning: annotation.detached
 --> test.lex:2:5
  |
2 | :: outer ::
3 |     body text
4 | ::
  | ~~~~~~~~~~~~~
  = annotation "outer" is not attached to any element

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestFormatParseError(t *testing.T) {
	t.Parallel()
	code := internal.NewSourceCode("Text\n\n:: type=python ::\n")

	issues := []tt.Issue{
		{
			Rule:     internal.ParseErrorRule,
			Filename: "test.lex",
			Severity: tt.SeverityError,
			Start:    token.Position{Line: 3, Column: 4},
			End:      token.Position{Line: 3, Column: 4},
			Message:  "annotation has no label",
		},
	}

	expected := `error: parse-error
 --> test.lex:3:4
  |
3 | :: type=python ::
  |    ^ annotation has no label

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestFormatMultipleDigitsLineNumbers(t *testing.T) {
	t.Parallel()
	code := internal.NewSourceCode("1\n2\n3\n4\n5\n6\n7\n8\n9\n- lonely\n")

	issues := []tt.Issue{
		{
			Rule:       internal.SingleItemList,
			Filename:   "test.lex",
			Severity:   tt.SeverityInfo,
			Start:      token.Position{Line: 10, Column: 1},
			End:        token.Position{Line: 10, Column: 9},
			Message:    "a single list item is read as a paragraph",
			Suggestion: "add a second item or drop the marker",
		},
	}

	expected := `info: list.single-item
  --> test.lex:10:1
   |
10 | - lonely
   | ~~~~~~~~
   = a single list item is read as a paragraph
   = help: add a second item or drop the marker

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestFormatTruncatesLongRanges(t *testing.T) {
	t.Parallel()
	code := internal.NewSourceCode("line 1\nline 2\nline 3\nline 4\nline 5\nline 6\nline 7\nline 8\nline 9\n")

	issues := []tt.Issue{
		{
			Rule:     "example",
			Filename: "test.lex",
			Start:    token.Position{Line: 1, Column: 1},
			End:      token.Position{Line: 9, Column: 7},
			Message:  "long",
		},
	}

	expected := `error: example
 --> test.lex:1:1
  |
1 | line 1
2 | line 2
3 | line 3
4 | line 4
5 | line 5
6 | line 6
  | ~~~~~~
  = long

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestOutOfRangeIssue(t *testing.T) {
	t.Parallel()
	code := internal.NewSourceCode("only line")

	issues := []tt.Issue{
		{
			Rule:     "example",
			Filename: "test.lex",
			Start:    token.Position{Line: 4, Column: 1},
			End:      token.Position{Line: 4, Column: 2},
			Message:  "gone",
		},
	}

	expected := `error: example
 --> test.lex:4:1
  |
  | gone

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestGenerateShortIssue(t *testing.T) {
	t.Parallel()
	issues := []tt.Issue{
		{
			Rule:     internal.PlaceholderRef,
			Filename: "a.lex",
			Severity: tt.SeverityInfo,
			Start:    token.Position{Line: 2, Column: 5},
			Message:  "placeholder still to come",
		},
		{
			Rule:     internal.ParseErrorRule,
			Filename: "b.lex",
			Start:    token.Position{Line: 1, Column: 1},
			Message:  "unexpected indent",
		},
	}

	expected := "a.lex:2:5: info: placeholder still to come [inline.placeholder]\n" +
		"b.lex:1:1: error: unexpected indent [parse-error]\n"

	assert.Equal(t, expected, GenerateShortIssue(issues))
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line   string
		column int
		want   int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"abc", 4, 3},
		{"\tx", 2, 8},
		{"ab\tx", 4, 8},
		{"abc", -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calculateVisualColumn(tt.line, tt.column), "%q column %d", tt.line, tt.column)
	}
}

func TestFindCommonIndent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expected string
		lines    []string
	}{
		{
			name: "whitespace indent",
			lines: []string{
				"    Session",
				"        Body.",
				"    After.",
			},
			expected: "    ",
		},
		{
			name: "tab indent",
			lines: []string{
				"\tSession",
				"\t\tBody.",
			},
			expected: "\t",
		},
		{
			name: "no indent",
			lines: []string{
				"Session",
				"    Body.",
			},
			expected: "",
		},
		{
			name: "blank line",
			lines: []string{
				"    Session",
				"",
				"        Body.",
			},
			expected: "    ",
		},
		{
			name:     "empty input",
			lines:    []string{},
			expected: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, findCommonIndent(tt.lines))
		})
	}
}

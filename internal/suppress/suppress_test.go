package suppress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lex "github.com/lex-fmt/core-sub004"
)

const source = `:: nolint rules="inline" ::

First paragraph.

:: nolint ::
Second paragraph.

Third.
`

func TestSuppressed(t *testing.T) {
	t.Parallel()
	doc, err := lex.Parse(source)
	require.NoError(t, err)
	m := Collect(doc)
	require.Equal(t, 2, m.Len())

	tests := []struct {
		name string
		rule string
		line int
		want bool
	}{
		{"document scope covers namespace", "inline.placeholder", 7, true},
		{"document scope is limited to its rules", "list.single-item", 7, false},
		{"attached scope covers every rule", "list.single-item", 5, true},
		{"annotation line itself is not covered", "list.single-item", 4, false},
		{"outside every scope", "parse-error", 2, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Suppressed(tt.rule, tt.line))
		})
	}
}

func TestDetachedCoversItsOwnLines(t *testing.T) {
	t.Parallel()
	doc, err := lex.Parse(":: outer ::\n    :: nolint ::\n::\n")
	require.NoError(t, err)
	m := Collect(doc)

	assert.True(t, m.Suppressed("any", 1))
	assert.False(t, m.Suppressed("any", 0))
}

func TestEmptyRulesIgnored(t *testing.T) {
	t.Parallel()
	doc, err := lex.Parse("Text.\n:: nolint rules=\"\" ::\n")
	require.NoError(t, err)
	assert.Equal(t, 0, Collect(doc).Len())
}

func TestNilManager(t *testing.T) {
	t.Parallel()
	var m *Manager
	assert.False(t, m.Suppressed("parse-error", 0))
	assert.Equal(t, 0, Collect(nil).Len())
}

func TestParseRuleNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "b.c"}, parseRuleNames(" a, ,b.c "))
	assert.Nil(t, parseRuleNames(""))
}

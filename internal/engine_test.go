package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/lex-fmt/core-sub004/internal/types"
)

func ruleNames(issues []tt.Issue) []string {
	var names []string
	for _, issue := range issues {
		names = append(names, issue.Rule)
	}
	return names
}

func TestRunSource(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"clean", "Fine text.\n", nil},
		{"single item", "- lonely\n", []string{SingleItemList}},
		{"placeholder", "See [TK-intro] here.\n", []string{PlaceholderRef}},
		{"indeterminate reference", "See [!!] here.\n", []string{IndeterminateRef}},
		{"parse error", ":: type=python ::\n", []string{ParseErrorRule}},
		{"detached annotation", ":: outer ::\n    :: inner ::\n::\n", []string{DetachedAnnotation}},
		{
			"issues sorted by position",
			"- lonely\n\nSee [TK] and [?].\n",
			[]string{SingleItemList, PlaceholderRef, IndeterminateRef},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine, err := NewEngine(nil)
			require.NoError(t, err)

			issues, err := engine.RunSource("test.lex", []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ruleNames(issues))
			for _, issue := range issues {
				assert.Equal(t, "test.lex", issue.Filename)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	issues, err := engine.RunSource("bad.lex", []byte("Intro\n\n    :: type=python ::\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, tt.SeverityError, issue.Severity)
	assert.Equal(t, 3, issue.Start.Line)
	assert.Equal(t, 8, issue.Start.Column)
	assert.Equal(t, 14, issue.Start.Offset)
}

func TestIssueRange(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	issues, err := engine.RunSource("x.lex", []byte("Intro\n\n- lonely\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Start.Line)
	assert.Equal(t, 1, issues[0].Start.Column)
	assert.Equal(t, 3, issues[0].End.Line)
	assert.Equal(t, 9, issues[0].End.Column)
	assert.Equal(t, tt.SeverityInfo, issues[0].Severity)
}

func TestNolint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "namespace",
			input: "Para.\n\n:: nolint rules=list ::\n- lonely\n",
			want:  nil,
		},
		{
			name:  "other namespace",
			input: "Para.\n\n:: nolint rules=inline ::\n- lonely\n",
			want:  []string{SingleItemList},
		},
		{
			name:  "whole document",
			input: ":: nolint ::\n\n- lonely\n\nSee [TK].\n",
			want:  nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine, err := NewEngine(nil)
			require.NoError(t, err)
			issues, err := engine.RunSource("n.lex", []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ruleNames(issues))
		})
	}
}

func TestConfiguredRules(t *testing.T) {
	t.Parallel()
	input := []byte("- lonely\n\nSee [TK].\n")

	t.Run("namespace off", func(t *testing.T) {
		t.Parallel()
		engine, err := NewEngine(map[string]tt.ConfigRule{"inline": {Severity: tt.SeverityOff}})
		require.NoError(t, err)
		issues, err := engine.RunSource("c.lex", input)
		require.NoError(t, err)
		assert.Equal(t, []string{SingleItemList}, ruleNames(issues))
	})

	t.Run("severity raised", func(t *testing.T) {
		t.Parallel()
		engine, err := NewEngine(map[string]tt.ConfigRule{SingleItemList: {Severity: tt.SeverityError}})
		require.NoError(t, err)
		issues, err := engine.RunSource("c.lex", input)
		require.NoError(t, err)
		require.NotEmpty(t, issues)
		assert.Equal(t, tt.SeverityError, issues[0].Severity)
	})

	t.Run("unknown rule", func(t *testing.T) {
		t.Parallel()
		_, err := NewEngine(map[string]tt.ConfigRule{"no-such-rule": {}})
		assert.Error(t, err)
	})

	t.Run("inlines disabled", func(t *testing.T) {
		t.Parallel()
		engine, err := NewEngine(nil, WithInlines(false))
		require.NoError(t, err)
		issues, err := engine.RunSource("c.lex", input)
		require.NoError(t, err)
		assert.Equal(t, []string{SingleItemList}, ruleNames(issues))
	})

	t.Run("ignore rule", func(t *testing.T) {
		t.Parallel()
		engine, err := NewEngine(nil)
		require.NoError(t, err)
		engine.IgnoreRule(SingleItemList)
		issues, err := engine.RunSource("c.lex", input)
		require.NoError(t, err)
		assert.Equal(t, []string{PlaceholderRef}, ruleNames(issues))
	})
}

func TestWithoutAttachment(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil, WithAttachment(false))
	require.NoError(t, err)

	issues, err := engine.RunSource("a.lex", []byte(":: outer ::\n    :: inner ::\n::\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestRuleNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{
		DetachedAnnotation,
		IndeterminateRef,
		PlaceholderRef,
		SingleItemList,
		ParseErrorRule,
	}, RuleNames())
}

func TestRunFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := NewCache(filepath.Join(dir, DefaultCacheDir))
	require.NoError(t, err)

	engine, err := NewEngine(nil, WithCache(cache))
	require.NoError(t, err)

	path := filepath.Join(dir, "doc.lex")
	require.NoError(t, os.WriteFile(path, []byte("- lonely\n"), 0o644))

	first, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.Len())

	second, err := engine.Run(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, os.WriteFile(path, []byte("Fine.\n"), 0o644))
	third, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, third)
}

func TestIgnorePath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	vendor := filepath.Join(dir, "vendor")
	require.NoError(t, os.MkdirAll(vendor, 0o755))
	path := filepath.Join(vendor, "doc.lex")
	require.NoError(t, os.WriteFile(path, []byte("- lonely\n"), 0o644))

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.IgnorePath(vendor)

	issues, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, issues)

	engine2, err := NewEngine(nil)
	require.NoError(t, err)
	engine2.IgnorePath("*.lex")
	issues, err = engine2.Run(path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestHasExtension(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil, WithExtensions(".lex", ".txt"))
	require.NoError(t, err)
	assert.True(t, engine.HasExtension("a/b.lex"))
	assert.True(t, engine.HasExtension("b.txt"))
	assert.False(t, engine.HasExtension("b.md"))
}

func TestReferenceRange(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	issues, err := engine.RunSource("test.lex", []byte("Intro\n\nSee [TK-intro] here.\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, 3, issue.Start.Line)
	assert.Equal(t, 5, issue.Start.Column)
	assert.Equal(t, 15, issue.End.Column)
	assert.NotEmpty(t, issue.Note)
}

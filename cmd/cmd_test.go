package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex-fmt/core-sub004/check"
	"github.com/lex-fmt/core-sub004/internal"
)

func init() {
	color.NoColor = true
	check.ProgressWriter = io.Discard
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTokensCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.lex", "Hello\n    world\n")

	out, err := execute(t, "tokens", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Text")
	assert.Contains(t, out, `"Hello"`)
	assert.Contains(t, out, "Indentation")
	assert.NotContains(t, out, "Indent ")

	out, err = execute(t, "tokens", "--normalized", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Indent ")
	assert.Contains(t, out, "Dedent")
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.lex", "Session:\n\n    Body text.\n")

	out, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "Document")
	assert.Contains(t, out, "Paragraph")

	out, err = execute(t, "parse", "--json", path)
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "Document", tree["type"])

	bad := writeFile(t, dir, "bad.lex", ":: type=python ::\n")
	_, err = execute(t, "parse", bad)
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.lex", "Fine text.\n")
	lonely := writeFile(t, dir, "lonely.lex", "- lonely\n")
	broken := writeFile(t, dir, "broken.lex", ":: type=python ::\n")

	tests := []struct {
		name    string
		args    []string
		wantErr error
		want    []string
	}{
		{
			name: "clean file",
			args: []string{"check", clean},
			want: []string{"no issues found"},
		},
		{
			name: "info passes by default",
			args: []string{"check", lonely},
			want: []string{"info: list.single-item", "lonely.lex:1:1", "= help: add a second item or drop the marker"},
		},
		{
			name:    "fail on info",
			args:    []string{"check", "--fail-on", "info", lonely},
			wantErr: ErrIssuesFound,
		},
		{
			name:    "parse error fails",
			args:    []string{"check", broken},
			wantErr: ErrIssuesFound,
			want:    []string{"error: parse-error", "1 issue(s): 1 error(s)"},
		},
		{
			name: "ignored rule",
			args: []string{"check", "--ignore", "parse-error", broken},
			want: []string{"no issues found"},
		},
		{
			name: "short output",
			args: []string{"check", "--short", lonely},
			want: []string{"lonely.lex:1:1: info: a single list item is read as a paragraph [list.single-item]"},
		},
		{
			name:    "root behaves like check",
			args:    []string{broken},
			wantErr: ErrIssuesFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCheckJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.lex", "- lonely\n")
	writeFile(t, dir, "b.lex", "See [TK].\n")
	outPath := filepath.Join(dir, "report.json")

	_, err := execute(t, "check", "--json", "-o", outPath, dir)
	require.NoError(t, err)

	d, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var report check.Report
	require.NoError(t, json.Unmarshal(d, &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Total)
	assert.Len(t, report.Files(), 2)
	assert.Equal(t, internal.PlaceholderRef, report.Issues[filepath.Join(dir, "b.lex")][0].Rule)
}

func TestCheckWithConfig(t *testing.T) {
	dir := t.TempDir()
	lonely := writeFile(t, dir, "lonely.lex", "- lonely\n")
	config := writeFile(t, dir, "lex.yaml", "name: test\nrules:\n  list:\n    severity: error\n")

	out, err := execute(t, "--config", config, "check", lonely)
	assert.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, out, "error: list.single-item")

	bad := writeFile(t, dir, "bad.yaml", "rules:\n  nope:\n    severity: error\n")
	_, err = execute(t, "--config", bad, "check", lonely)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrIssuesFound)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lex.yaml")

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	config, err := check.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, check.DefaultConfig(), config)

	_, err = execute(t, "init", "--config", path)
	assert.Error(t, err)

	_, err = execute(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)
	for _, name := range internal.RuleNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "WARNING")
}

package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex-fmt/core-sub004/internal"
	tt "github.com/lex-fmt/core-sub004/internal/types"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		file    string
		content string
		check   func(t *testing.T, c Config)
	}{
		{
			name: "yaml",
			file: ".lex.yaml",
			content: `name: docs
rules:
  inline:
    severity: off
  list.single-item:
    severity: error
ignore_paths:
  - drafts
inlines: false
`,
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "docs", c.Name)
				assert.Equal(t, tt.SeverityOff, c.Rules["inline"].Severity)
				assert.Equal(t, tt.SeverityError, c.Rules[internal.SingleItemList].Severity)
				assert.Equal(t, []string{"drafts"}, c.IgnorePaths)
				assert.False(t, c.Inlines)
				assert.True(t, c.AttachAnnotations, "unset keys keep their defaults")
				assert.Equal(t, []string{".lex"}, c.Extensions)
			},
		},
		{
			name: "toml",
			file: ".lex.toml",
			content: `name = "docs"
extensions = [".lex", ".txt"]
attach_annotations = false

[rules."annotation.detached"]
severity = "info"
`,
			check: func(t *testing.T, c Config) {
				assert.Equal(t, []string{".lex", ".txt"}, c.Extensions)
				assert.False(t, c.AttachAnnotations)
				assert.Equal(t, tt.SeverityInfo, c.Rules[internal.DetachedAnnotation].Severity)
			},
		},
		{
			name:    "empty yaml",
			file:    "empty.yaml",
			content: "",
			check: func(t *testing.T, c Config) {
				assert.Equal(t, DefaultConfig(), c)
			},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, err := LoadConfig(writeConfig(t, tc.file, tc.content))
			require.NoError(t, err)
			tc.check(t, c)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown rule", "a.yaml", "rules:\n  no-such-rule:\n    severity: error\n"},
		{"bad severity", "b.yaml", "rules:\n  parse-error:\n    severity: loud\n"},
		{"bad extension", "c.yaml", "extensions: [lex]\n"},
		{"empty name", "d.toml", "name = \"\"\n"},
		{"malformed", "e.yaml", "rules: [\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadConfig(writeConfig(t, tc.file, tc.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultConfigWhenNoPath(t *testing.T) {
	t.Parallel()
	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.NoError(t, c.Validate())
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	c := DefaultConfig()
	c.Rules[internal.PlaceholderRef] = tt.ConfigRule{Severity: tt.SeverityWarning}
	require.NoError(t, c.Write(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestNewFromConfigWithCache(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := DefaultConfig()
	c.CacheDir = filepath.Join(dir, internal.DefaultCacheDir)
	c.IgnorePaths = []string{"*.skip.lex"}

	engine, err := NewFromConfig(c, "", nil)
	require.NoError(t, err)

	path := filepath.Join(dir, "x.skip.lex")
	require.NoError(t, os.WriteFile(path, []byte("- lonely\n"), 0o644))
	issues, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, issues)

	_, err = os.Stat(c.CacheDir)
	assert.NoError(t, err)
}

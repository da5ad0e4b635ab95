package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
}

func TestScan(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.lex":                "Second.",
		"a.lex":                "First.",
		"notes.txt":            "plain text",
		"sub/c.lex":            "Nested.",
		".lexcache/cached.lex": "skipped",
	})

	files, err := New(root, ".lex").Scan()
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
		assert.Positive(t, f.Size)
	}
	assert.Equal(t, []string{
		filepath.Join(root, "a.lex"),
		filepath.Join(root, "b.lex"),
		filepath.Join(root, "sub", "c.lex"),
	}, paths)
}

func TestScanWithoutExtensions(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.lex": "x", "b.txt": "y"})

	files, err := New(root).Scan()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestScanMissingRoot(t *testing.T) {
	t.Parallel()
	_, err := New(filepath.Join(t.TempDir(), "missing")).Scan()
	assert.Error(t, err)
}

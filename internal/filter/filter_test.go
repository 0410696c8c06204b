package filter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gorc/internal/filter"
)

// tree lays out a small directory structure and chdirs into it.
func tree(t *testing.T) {
	t.Helper()

	dir := t.TempDir()

	for _, path := range []string{
		"a.txt",
		"b.log",
		"sub/c.txt",
		"sub/deep/d.bin",
	} {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(path), 0o600))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestResolveExplicitFiles(t *testing.T) {
	tree(t)

	files, scanned, err := filter.Resolve([]string{"a.txt", "a.txt", "b.log"}, nil, nil, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.log"}, files)
	assert.Equal(t, 3, scanned)
}

func TestResolveDirectoryNeedsRecursive(t *testing.T) {
	tree(t)

	_, _, err := filter.Resolve([]string{"sub"}, nil, nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--recursive")
}

func TestResolveRecursive(t *testing.T) {
	tree(t)

	files, scanned, err := filter.Resolve([]string{"."}, nil, nil, true)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.txt", "b.log", filepath.Join("sub", "c.txt"), filepath.Join("sub", "deep", "d.bin")}, files)
	assert.Equal(t, 4, scanned)
}

func TestResolvePatterns(t *testing.T) {
	tree(t)

	files, scanned, err := filter.Resolve([]string{"."}, []string{"*.txt"}, []string{"sub/*"}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, files)
	assert.Equal(t, 4, scanned)
}

func TestResolveNoMatches(t *testing.T) {
	tree(t)

	_, _, err := filter.Resolve([]string{"."}, []string{"*.rs"}, nil, true)
	assert.Error(t, err)
}

func TestResolveMissingPath(t *testing.T) {
	tree(t)

	_, _, err := filter.Resolve([]string{"nope.txt"}, nil, nil, false)
	assert.Error(t, err)
}

func TestLoadPatterns(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "patterns.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`[
		// everything under src
		"src/*",
		"*.txt", // plus text files
	]`), 0o600))

	patterns, err := filter.LoadPatterns(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/*", "*.txt"}, patterns)

	_, err = filter.LoadPatterns(filepath.Join(dir, "missing.jsonc"))
	assert.Error(t, err)
}

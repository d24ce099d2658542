package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.json"))
	writeFile(t, filepath.Join(root, "a.hcl"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "nested", "c.YAML"))

	single := filepath.Join(root, "a.hcl")

	files, err := FindFiles(
		[]string{root, single, filepath.Join(root, "missing")},
		".hcl", ".json", ".yaml",
	)
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.json"),
		filepath.Join(root, "nested", "c.YAML"),
	}
	assert.Equal(t, want, files)
}

func TestFindFiles_FileArgumentFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"))
	writeFile(t, filepath.Join(root, "z.json"))

	files, err := FindFiles([]string{filepath.Join(root, "z.json"), root}, ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "z.json"), filepath.Join(root, "a.json")}, files)
}

func TestFindFiles_IgnoresNonMatchingFileArgument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "readme.md"))

	files, err := FindFiles([]string{filepath.Join(root, "readme.md")}, ".json")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFiles_PanicsWithoutExtensions(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFiles([]string{"."}) })
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("app.HCL", ".hcl"))
	assert.True(t, HasExtension("deps.yml", ".yaml", ".yml"))
	assert.False(t, HasExtension("deps", ".json"))
}

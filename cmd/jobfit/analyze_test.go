package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExpandInputs_Files(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "posting")
	b := writeFile(t, dir, "b.html", "<p>posting</p>")

	inputs, err := expandInputs([]string{a, b})

	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, inputs)
}

func TestExpandInputs_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "posting")
	writeFile(t, dir, "b.md", "posting")
	writeFile(t, dir, "notes.json", "{}")

	inputs, err := expandInputs([]string{dir})

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.md"),
	}, inputs)
}

func TestExpandInputs_SkipsNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, dir, "a.txt", "posting")

	inputs, err := expandInputs([]string{dir})

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, inputs)
}

func TestExpandInputs_MissingPath(t *testing.T) {
	_, err := expandInputs([]string{"/nonexistent/posting.txt"})

	assert.Error(t, err)
}

func TestExpandInputs_EmptyDirectory(t *testing.T) {
	_, err := expandInputs([]string{t.TempDir()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no posting files found")
}

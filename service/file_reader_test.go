package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPythonFile(t *testing.T) {
	reader := NewFileReader()

	assert.True(t, reader.IsValidPythonFile("app.py"))
	assert.True(t, reader.IsValidPythonFile("types.pyi"))
	assert.True(t, reader.IsValidPythonFile("APP.PY"))
	assert.False(t, reader.IsValidPythonFile("app.txt"))
	assert.False(t, reader.IsValidPythonFile("app"))
	assert.False(t, reader.IsValidPythonFile("app.pyc"))
}

func TestIsExcludedFile(t *testing.T) {
	tests := []struct {
		path     string
		excluded bool
	}{
		{"src/app.py", false},
		{"src/hooks/pre_commit.py", true},
		{"app/migrations/0001_initial.py", true},
		{"app/alembic/versions/0001_create_users.py", true},
		{"src/alembic_helpers.py", false},
		{"tests/test_app.py", true},
		{"src/app_test.py", true},
		{"src/conftest.py", true},
		{"src/__init__.py", true},
		{"src/package/__init__.py", true},
		{"src/testing.py", false},
		{"src/contest.py", false},
		{"src/latest_app.py", false},
	}

	reader := NewFileReader()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.excluded, reader.IsExcludedFile(tt.path))
		})
	}
}

func TestCollectPythonFiles(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "app.py", "x = 1\n")
	writeFile(t, dir, "util.py", "y = 2\n")
	writeFile(t, dir, "notes.txt", "not python\n")
	writeFile(t, dir, "test_app.py", "x = 1\n")
	writeFile(t, dir, "__init__.py", "")
	writeFile(t, filepath.Join(dir, "migrations"), "0001_initial.py", "x = 1\n")
	writeFile(t, filepath.Join(dir, "sub"), "feature.py", "z = 3\n")

	reader := NewFileReader()
	files, err := reader.CollectPythonFiles([]string{dir}, true, nil, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}

	assert.ElementsMatch(t, []string{"app.py", "util.py", "sub/feature.py"}, names)
}

func TestCollectPythonFilesNonRecursive(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "app.py", "x = 1\n")
	writeFile(t, filepath.Join(dir, "sub"), "feature.py", "z = 3\n")

	reader := NewFileReader()
	files, err := reader.CollectPythonFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "app.py", filepath.Base(files[0]))
}

func TestCollectPythonFilesWithPatterns(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "app.py", "x = 1\n")
	writeFile(t, dir, "legacy.py", "y = 2\n")

	reader := NewFileReader()

	files, err := reader.CollectPythonFiles([]string{dir}, true, nil, []string{"legacy.py"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "app.py", filepath.Base(files[0]))

	files, err = reader.CollectPythonFiles([]string{dir}, true, []string{"legacy*"}, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "legacy.py", filepath.Base(files[0]))
}

func TestCollectPythonFilesMissingPath(t *testing.T) {
	reader := NewFileReader()
	_, err := reader.CollectPythonFiles([]string{"/nonexistent/path"}, true, nil, nil)
	assert.Error(t, err)
}

func TestCollectPythonFilesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.py", "x = 1\n")

	reader := NewFileReader()
	files, err := reader.CollectPythonFiles([]string{path}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)

	// An excluded single file is silently dropped, not an error.
	excluded := writeFile(t, dir, "test_app.py", "x = 1\n")
	files, err = reader.CollectPythonFiles([]string{excluded}, false, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

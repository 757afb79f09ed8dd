package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("# test\n"), 0644))
}

func TestFindTaskfiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.hcl"))
	writeFile(t, filepath.Join(root, "nested", "a.hcl"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	single := filepath.Join(t.TempDir(), "Taskfile")
	writeFile(t, single)

	files, err := FindTaskfiles(root, single, filepath.Join(root, "b.hcl"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "a.hcl"),
		single,
	}, files)
}

func TestFindTaskfiles_Missing(t *testing.T) {
	_, err := FindTaskfiles(filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

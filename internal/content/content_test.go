package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func collect(t *testing.T, root, ext string) ([]string, error) {
	t.Helper()
	var paths []string
	for p, err := range Locate(root, ext) {
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func TestLocate_FiltersByExtensionAndRecurses(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.md"))
	writeFile(t, filepath.Join(root, "a.md"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "nested", "deep", "c.md"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.md"), 0o750))

	paths, err := collect(t, root, ".md")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "b.md"),
		filepath.Join(root, "nested", "deep", "c.md"),
	}, paths)
}

func TestLocate_EmptyRoot(t *testing.T) {
	paths, err := collect(t, t.TempDir(), ".md")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestLocate_MissingRoot(t *testing.T) {
	_, err := collect(t, filepath.Join(t.TempDir(), "nope"), ".md")
	require.ErrorIs(t, err, ErrRootNotFound)
}

func TestLocate_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file.md")
	writeFile(t, root)

	_, err := collect(t, root, ".md")
	require.ErrorIs(t, err, ErrRootNotDir)
}

func TestLocate_EarlyBreakStopsWalk(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		writeFile(t, filepath.Join(root, name))
	}

	var seen []string
	for p, err := range Locate(root, ".md") {
		require.NoError(t, err)
		seen = append(seen, filepath.Base(p))
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.md", "b.md"}, seen)
}

package output

import (
	"os"
	"path/filepath"
	"testing"

	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "out")
	return NewWriter(root, NewMinifier(), nil), root
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}

func TestWrite_MinifiesHTMLAndCreatesParents(t *testing.T) {
	w, root := newTestWriter(t)

	require.NoError(t, w.Write(KindPage, "posts/hello/index.html", []byte(sampleDoc)))

	want, err := NewMinifier().HTML([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, want, readFile(t, filepath.Join(root, "posts", "hello", "index.html")))
	assert.Equal(t, Stats{Files: 1, Minified: 1, Bytes: int64(len(want))}, w.Stats())
}

func TestWrite_NonHTMLUnchanged(t *testing.T) {
	w, root := newTestWriter(t)
	data := []byte("<p>   not minified   </p>\n")

	require.NoError(t, w.Write(KindPage, "feed.xml", data))
	assert.Equal(t, data, readFile(t, filepath.Join(root, "feed.xml")))
	assert.Equal(t, 0, w.Stats().Minified)
}

func TestWrite_RejectsEscapingPaths(t *testing.T) {
	w, _ := newTestWriter(t)
	for _, rel := range []string{"../evil.html", "", "/abs/index.html"} {
		err := w.Write(KindPage, rel, []byte("x"))
		require.Error(t, err, rel)
		assert.Equal(t, ferrors.CategoryFileSystem, ferrors.GetCategory(err))
	}
}

func TestWrite_UnwritableRoot(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o600))

	err := NewWriter(blocker, NewMinifier(), nil).Write(KindListing, "blog/index.html", []byte("<p>x</p>"))
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryFileSystem, ferrors.GetCategory(err))
}

func TestCopyTree_MirrorsAssets(t *testing.T) {
	assets := t.TempDir()
	css := []byte("body {  color: red;  }\n")
	bin := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}
	page := []byte(sampleDoc)
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "css"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "about"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "empty"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "css", "main.css"), css, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "logo.png"), bin, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "about", "index.html"), page, 0o600))

	w, root := newTestWriter(t)
	require.NoError(t, w.CopyTree(assets))

	assert.Equal(t, css, readFile(t, filepath.Join(root, "css", "main.css")))
	assert.Equal(t, bin, readFile(t, filepath.Join(root, "logo.png")))

	want, err := NewMinifier().HTML(page)
	require.NoError(t, err)
	got := readFile(t, filepath.Join(root, "about", "index.html"))
	assert.Equal(t, want, got)
	assert.NotEqual(t, page, got)
	assert.DirExists(t, filepath.Join(root, "empty"))

	stats := w.Stats()
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 1, stats.Minified)
}

func TestCopyTree_MissingSource(t *testing.T) {
	w, _ := newTestWriter(t)
	err := w.CopyTree(filepath.Join(t.TempDir(), "public"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, ferrors.CategoryFileSystem, ferrors.GetCategory(err))
}

func TestCopyTree_SkipsOutputRootInsideSource(t *testing.T) {
	assets := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "about"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "robots.txt"), []byte("User-agent: *\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "about", "index.html"), []byte(sampleDoc), 0o600))

	root := filepath.Join(assets, "out")
	w := NewWriter(root, NewMinifier(), nil)
	require.NoError(t, w.CopyTree(assets))
	require.NoError(t, w.CopyTree(assets), "a second run must not copy the previous output")

	assert.FileExists(t, filepath.Join(root, "robots.txt"))
	assert.FileExists(t, filepath.Join(root, "about", "index.html"))
	assert.NoDirExists(t, filepath.Join(root, "out"))
	assert.Equal(t, 4, w.Stats().Files)
}

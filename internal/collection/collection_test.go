package collection

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/postbuilder/internal/content"
	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/postbuilder/internal/post"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubParser derives a page from the file contents: "<date>" or "error".
type stubParser struct {
	calls []string
}

func (s *stubParser) Parse(path string) (*post.Page, error) {
	s.calls = append(s.calls, filepath.Base(path))
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	date := strings.TrimSpace(string(raw))
	if date == "error" {
		return nil, errors.New("bad " + filepath.Base(path))
	}
	slug := strings.TrimSuffix(filepath.Base(path), ".md")
	return &post.Page{
		Matter:     frontmatter.PostMatter{Title: slug, Date: date},
		Slug:       slug,
		Path:       "/" + filepath.ToSlash(path),
		SourcePath: path,
	}, nil
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
}

func dates(c *Collection) []string {
	out := make([]string, len(c.Pages))
	for i, p := range c.Pages {
		out[i] = p.Matter.Date
	}
	return out
}

func TestBuild_SortsByDateDescending(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.md": "2023-01-01",
		"b.md": "2024-06-15",
		"c.md": "2023-06-01",
	})

	c, err := NewBuilder(&stubParser{}, ".md", WithLogger(quietLogger())).Build(Spec{
		Name: "published", Root: root, Title: "lndev - blog", Description: "d", Route: "blog",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-06-15", "2023-06-01", "2023-01-01"}, dates(c))
	assert.Equal(t, "lndev - blog", c.Title)
	assert.Equal(t, "blog/index.html", c.OutputPath())
}

func TestBuild_IgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.md": "2023-01-01", "notes.txt": "error"})

	c, err := NewBuilder(&stubParser{}, ".md", WithLogger(quietLogger())).Build(Spec{Name: "published", Root: root})
	require.NoError(t, err)
	assert.Len(t, c.Pages, 1)
}

func TestBuild_FailFastStopsAtFirstError(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.md": "2023-01-01",
		"b.md": "error",
		"c.md": "2023-06-01",
	})

	parser := &stubParser{}
	c, err := NewBuilder(parser, ".md", WithLogger(quietLogger())).Build(Spec{Name: "published", Root: root})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Equal(t, []string{"a.md", "b.md"}, parser.calls)
}

func TestBuild_CollectAllReportsEveryError(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.md": "error",
		"b.md": "2023-01-01",
		"c.md": "error",
	})

	parser := &stubParser{}
	c, err := NewBuilder(parser, ".md", WithPolicy(CollectAll), WithLogger(quietLogger())).Build(Spec{Name: "draft", Root: root})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Len(t, parser.calls, 3)
	assert.Contains(t, err.Error(), "bad a.md")
	assert.Contains(t, err.Error(), "bad c.md")
}

func TestBuild_MissingRootFails(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nope")
	c, err := NewBuilder(&stubParser{}, ".md", WithLogger(quietLogger())).Build(Spec{
		Name: "published", Root: root, Route: "blog",
	})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, content.ErrRootNotFound)
	assert.Equal(t, ferrors.CategoryFileSystem, ferrors.GetCategory(err))
}

func TestBuild_MissingRootAllowed(t *testing.T) {
	c, err := NewBuilder(&stubParser{}, ".md", WithLogger(quietLogger())).Build(Spec{
		Name: "draft", Root: filepath.Join(t.TempDir(), "drafts"), Route: "drafts", AllowMissing: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, c.Pages)
	assert.Empty(t, c.Pages)
}

func TestBuild_RootIsFileFails(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"posts": "not a dir"})

	_, err := NewBuilder(&stubParser{}, ".md", WithLogger(quietLogger())).Build(Spec{Name: "published", Root: filepath.Join(root, "posts")})
	require.Error(t, err)
}

func TestSortPages_TieBreakIsDeterministic(t *testing.T) {
	pages := []*post.Page{
		{Matter: frontmatter.PostMatter{Date: "2024-01-01"}, Slug: "b", Path: "/posts/b"},
		{Matter: frontmatter.PostMatter{Date: "2024-01-01"}, Slug: "a", Path: "/posts/z/a"},
		{Matter: frontmatter.PostMatter{Date: "2024-02-01"}, Slug: "c", Path: "/posts/c"},
		{Matter: frontmatter.PostMatter{Date: "2024-01-01"}, Slug: "a", Path: "/posts/a"},
	}
	SortPages(pages)

	var got []string
	for _, p := range pages {
		got = append(got, p.Path)
	}
	assert.Equal(t, []string{"/posts/c", "/posts/a", "/posts/z/a", "/posts/b"}, got)
}

func TestDuplicateSlugs(t *testing.T) {
	published := &Collection{Pages: []*post.Page{{Slug: "hello", Path: "/posts/hello"}, {Slug: "other", Path: "/posts/other"}}}
	drafts := &Collection{Pages: []*post.Page{{Slug: "hello", Path: "/drafts/hello"}}}

	assert.Equal(t, map[string][]string{"hello": {"/posts/hello", "/drafts/hello"}}, DuplicateSlugs(published, drafts))
	assert.Empty(t, DuplicateSlugs(published))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, FailFast, p)

	p, err = ParsePolicy("collect_all")
	require.NoError(t, err)
	assert.Equal(t, CollectAll, p)

	p, err = ParsePolicy(" Collect-All ")
	require.NoError(t, err)
	assert.Equal(t, CollectAll, p)

	_, err = ParsePolicy("skip")
	require.Error(t, err)
}

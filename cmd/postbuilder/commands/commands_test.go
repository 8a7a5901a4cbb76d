package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/postbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloPost = `---
title: Hello World
summary: First post
cover:
  image: /img/hello.png
date: 2024-06-15
tags: [go]
---
Hello there.
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

// siteDir creates a minimal site in a temp dir and makes it the working directory.
func siteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "posts", "hello.md"), helloPost)
	writeFile(t, filepath.Join(dir, "public", "robots.txt"), "User-agent: *\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drafts"), 0o750))
	t.Chdir(dir)
	return dir
}

func testGlobal(out io.Writer) *Global {
	return &Global{
		Ctx:    context.Background(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Out:    out,
	}
}

func parse(t *testing.T, args ...string) (*kong.Context, *CLI) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"}, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx, cli
}

func TestParse_BuildFlags(t *testing.T) {
	kctx, cli := parse(t, "-c", "site.yaml", "-v", "build", "--origin", "https://example.org/", "-o", "dist")
	assert.Equal(t, "build", kctx.Command())
	assert.Equal(t, "site.yaml", cli.Config)
	assert.True(t, cli.Verbose)
	assert.Equal(t, "https://example.org/", cli.Build.Origin)
	assert.Equal(t, "dist", cli.Build.Output)
}

func TestParse_DefaultConfigPath(t *testing.T) {
	_, cli := parse(t, "discover")
	assert.Equal(t, DefaultConfigPath, cli.Config)
}

func TestBuild_WithoutConfigUsesDefaults(t *testing.T) {
	dir := siteDir(t)
	var out bytes.Buffer

	err := (&BuildCmd{}).Run(testGlobal(&out), &CLI{Config: DefaultConfigPath})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "out", "posts", "hello", "index.html"))
	assert.FileExists(t, filepath.Join(dir, "out", "blog", "index.html"))
	assert.FileExists(t, filepath.Join(dir, "out", "drafts", "index.html"))
	assert.FileExists(t, filepath.Join(dir, "out", "robots.txt"))
	assert.Contains(t, out.String(), "Build completed successfully: 1 pages")
}

func TestBuild_Overrides(t *testing.T) {
	dir := siteDir(t)
	report := filepath.Join(dir, "report.json")

	cmd := &BuildCmd{Origin: "https://example.org/", Output: "dist", Report: report}
	require.NoError(t, cmd.Run(testGlobal(io.Discard), &CLI{Config: DefaultConfigPath}))

	page, err := os.ReadFile(filepath.Join(dir, "dist", "posts", "hello", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "https://example.org/posts/hello")
	assert.FileExists(t, report)
}

func TestBuild_InvalidOriginOverride(t *testing.T) {
	siteDir(t)

	err := (&BuildCmd{Origin: "lndev.nl"}).Run(testGlobal(io.Discard), &CLI{Config: DefaultConfigPath})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryValidation, ferrors.GetCategory(err))
}

func TestBuild_ExplicitMissingConfigFails(t *testing.T) {
	siteDir(t)

	err := (&BuildCmd{}).Run(testGlobal(io.Discard), &CLI{Config: "missing.yaml"})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryConfig, ferrors.GetCategory(err))
}

func TestBuild_FailureReturnsClassifiedError(t *testing.T) {
	dir := siteDir(t)
	writeFile(t, filepath.Join(dir, "posts", "broken.md"), "no front matter\n")

	err := (&BuildCmd{}).Run(testGlobal(io.Discard), &CLI{Config: DefaultConfigPath})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryDecode, ferrors.GetCategory(err))
	assert.Equal(t, 3, ferrors.NewCLIErrorAdapter(false, slog.Default()).ExitCodeFor(err))
}

func TestDiscover_ListsPagesWithoutOutput(t *testing.T) {
	dir := siteDir(t)
	writeFile(t, filepath.Join(dir, "drafts", "wip.md"), helloPost)
	var out bytes.Buffer

	require.NoError(t, (&DiscoverCmd{}).Run(testGlobal(&out), &CLI{Config: DefaultConfigPath}))

	assert.Contains(t, out.String(), "published (/blog): 1 pages")
	assert.Contains(t, out.String(), "draft (/drafts): 1 pages")
	assert.Contains(t, out.String(), "/posts/hello")
	assert.Contains(t, out.String(), "/drafts/wip")
	assert.Contains(t, out.String(), "sec read")
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestInit_WritesConfigAndRespectsForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "postbuilder.yaml")
	root := &CLI{Config: path}
	var out bytes.Buffer

	require.NoError(t, (&InitCmd{}).Run(testGlobal(&out), root))
	assert.Contains(t, out.String(), "initialized successfully")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Origin, cfg.Origin)

	err = (&InitCmd{}).Run(testGlobal(io.Discard), root)
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryConfig, ferrors.GetCategory(err))

	require.NoError(t, (&InitCmd{Force: true}).Run(testGlobal(io.Discard), root))
}

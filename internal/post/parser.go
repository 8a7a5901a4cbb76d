package post

import (
	"errors"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/postbuilder/internal/markdown"
	"git.home.luguber.info/inful/postbuilder/internal/readtime"
	"git.home.luguber.info/inful/postbuilder/internal/share"
)

// ErrEmptySlug is returned for a content file whose name is only the extension.
var ErrEmptySlug = errors.New("file name yields an empty slug")

// Options carries the configuration a Parser derives page fields from.
type Options struct {
	// Origin is the absolute site URL without trailing slash.
	Origin string
	// RouteBase is the directory routes are computed relative to.
	RouteBase      string
	Extension      string
	TitlePrefix    string
	SharePlatforms []string
	WordsPerMinute int
}

// Parser turns content files into Pages.
type Parser struct {
	opts Options
	md   markdown.Converter
}

// NewParser returns a Parser using md for body conversion.
func NewParser(opts Options, md markdown.Converter) *Parser {
	if opts.RouteBase == "" {
		opts.RouteBase = "."
	}
	return &Parser{opts: opts, md: md}
}

// Parse reads the file at path and derives every Page field. It returns either a
// complete Page or the first error; errors are classified (filesystem, decode, render).
func (p *Parser) Parse(file string) (*Page, error) {
	raw, err := os.ReadFile(file) // #nosec G304 -- paths come from the content locator
	if err != nil {
		return nil, ferrors.FileSystemError("read content file").WithCause(err).
			WithContext("path", file).Build()
	}

	fm, body, had, err := frontmatter.Split(raw)
	if err == nil && !had {
		err = frontmatter.ErrMissingFrontMatter
	}
	if err != nil {
		return nil, decodeError(err, file)
	}
	matter, err := frontmatter.DecodePost(fm)
	if err != nil {
		return nil, decodeError(err, file)
	}

	html, err := p.md.ToHTML(body)
	if err != nil {
		return nil, ferrors.RenderError("convert markdown").WithCause(err).
			WithContext("path", file).Build()
	}

	slug, route, err := p.route(file)
	if err != nil {
		return nil, err
	}

	canonical := p.opts.Origin + route
	links, err := share.Links(p.opts.SharePlatforms, matter.Title, canonical, matter.Tags)
	if err != nil {
		return nil, ferrors.ConfigError("build share links").WithCause(err).Build()
	}

	fingerprint, err := ComputeFingerprint(fm, body)
	if err != nil {
		return nil, decodeError(err, file)
	}

	seconds := readtime.Estimate(string(body), p.opts.WordsPerMinute)
	return &Page{
		Matter:         matter,
		Slug:           slug,
		Path:           route,
		CanonicalURL:   canonical,
		CoverImageURL:  p.opts.Origin + matter.Cover.Image,
		Content:        template.HTML(html), // #nosec G203 -- authored content is trusted
		ReadingTime:    readtime.Label(seconds),
		ReadingSeconds: seconds,
		Share:          links,
		PageTitle:      p.opts.TitlePrefix + matter.Title,
		Origin:         p.opts.Origin,
		SourcePath:     file,
		Fingerprint:    fingerprint,
	}, nil
}

// route derives the slug and the rooted route path of file relative to RouteBase.
func (p *Parser) route(file string) (slug, route string, err error) {
	name := filepath.Base(file)
	if p.opts.Extension != "" {
		slug = strings.TrimSuffix(name, p.opts.Extension)
	} else {
		slug = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if slug == "" {
		return "", "", ferrors.DecodeError("derive slug").WithCause(ErrEmptySlug).
			WithContext("path", file).Build()
	}

	base, err := filepath.Abs(p.opts.RouteBase)
	if err == nil {
		var dir string
		dir, err = filepath.Abs(filepath.Dir(file))
		if err == nil {
			route, err = filepath.Rel(base, dir)
		}
	}
	if err == nil && (route == ".." || strings.HasPrefix(route, ".."+string(filepath.Separator))) {
		err = os.ErrInvalid
	}
	if err != nil {
		return "", "", ferrors.BuildError("content file outside route base").WithCause(err).
			WithContext("path", file).WithContext("base", p.opts.RouteBase).Build()
	}

	route = path.Join("/", filepath.ToSlash(route), slug)
	return slug, route, nil
}

func decodeError(err error, file string) error {
	return ferrors.DecodeError("decode front matter").WithCause(err).
		WithContext("path", file).Build()
}

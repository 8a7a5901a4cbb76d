// Package collection builds ordered listings of pages from a content root.
package collection

import (
	"cmp"
	"errors"
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/postbuilder/internal/content"
	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/post"
)

// Spec names one content set and the listing it produces.
type Spec struct {
	Name        string
	Root        string
	Title       string
	Description string
	// Route is the listing's route without slashes, e.g. "blog".
	Route string
	// AllowMissing turns a missing Root into an empty collection instead of an error.
	AllowMissing bool
}

// Collection is an ordered listing of pages.
type Collection struct {
	Name        string
	Title       string
	Description string
	Route       string
	Pages       []*post.Page
}

// OutputPath is the output-relative file the listing renders to.
func (c *Collection) OutputPath() string {
	return post.OutputPathFor(c.Route)
}

// PageParser parses one content file.
type PageParser interface {
	Parse(path string) (*post.Page, error)
}

// Builder runs the content locator and parser over one content root.
type Builder struct {
	parser    PageParser
	extension string
	policy    Policy
	logger    *slog.Logger
	recorder  metrics.Recorder
}

// Option configures a Builder.
type Option func(*Builder)

// WithPolicy sets the failure policy (default FailFast).
func WithPolicy(p Policy) Option { return func(b *Builder) { b.policy = p } }

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option { return func(b *Builder) { b.logger = l } }

// WithRecorder sets the metrics recorder (default NoopRecorder).
func WithRecorder(r metrics.Recorder) Option { return func(b *Builder) { b.recorder = r } }

// NewBuilder returns a Builder for files ending in extension.
func NewBuilder(parser PageParser, extension string, opts ...Option) *Builder {
	b := &Builder{
		parser:    parser,
		extension: extension,
		policy:    FailFast,
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build parses every content file under spec.Root and returns the pages sorted
// newest first. No partial collection is returned on failure.
func (b *Builder) Build(spec Spec) (*Collection, error) {
	c := &Collection{
		Name:        spec.Name,
		Title:       spec.Title,
		Description: spec.Description,
		Route:       spec.Route,
		Pages:       []*post.Page{},
	}

	var errs []error
	for path, err := range content.Locate(spec.Root, b.extension) {
		if errors.Is(err, content.ErrRootNotFound) && spec.AllowMissing {
			b.logger.Warn("Content root does not exist; collection is empty",
				logfields.Collection(spec.Name), logfields.Path(spec.Root))
			return c, nil
		}
		if err != nil {
			return nil, ferrors.FileSystemError("locate content").WithCause(err).
				WithContext("collection", spec.Name).WithContext("root", spec.Root).Build()
		}

		page, err := b.parser.Parse(path)
		if err != nil {
			if b.policy == FailFast {
				return nil, err
			}
			b.logger.Error("Failed to parse content file",
				logfields.Collection(spec.Name), logfields.File(path), logfields.Error(err))
			errs = append(errs, err)
			continue
		}
		b.logger.Debug("Parsed page",
			logfields.Collection(spec.Name), logfields.File(path), logfields.Route(page.Path))
		c.Pages = append(c.Pages, page)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	SortPages(c.Pages)
	b.recorder.AddPagesParsed(spec.Name, len(c.Pages))
	return c, nil
}

// SortPages orders pages by publication date descending (string comparison),
// then by slug and source path ascending so equal dates have a fixed order.
func SortPages(pages []*post.Page) {
	slices.SortStableFunc(pages, func(a, b *post.Page) int {
		return cmp.Or(
			cmp.Compare(b.Matter.Date, a.Matter.Date),
			cmp.Compare(a.Slug, b.Slug),
			cmp.Compare(a.Path, b.Path),
		)
	})
}

// DuplicateSlugs returns every slug shared by more than one page across the
// given collections, mapped to the routes that use it.
func DuplicateSlugs(collections ...*Collection) map[string][]string {
	routes := map[string][]string{}
	for _, c := range collections {
		for _, p := range c.Pages {
			routes[p.Slug] = append(routes[p.Slug], p.Path)
		}
	}
	for slug, r := range routes {
		if len(r) < 2 {
			delete(routes, slug)
		}
	}
	return routes
}

// Package render executes the post and listing templates.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/postbuilder/internal/collection"
	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/post"
)

// Template file names looked up in the override directory.
const (
	PostTemplate    = "post.html"
	ListingTemplate = "blog.html"
)

//go:embed templates_defaults/*.html
var embeddedTemplates embed.FS

// TemplateInfo records where a template was loaded from.
type TemplateInfo struct {
	Source string `json:"source"` // "file" or "embedded"
	Path   string `json:"path,omitempty"`
}

// Listing is the data passed to the listing template.
type Listing struct {
	Title        string
	Description  string
	Route        string
	CanonicalURL string
	Origin       string
	Pages        []*post.Page
}

// Renderer holds parsed templates. It is safe for reuse across pages.
type Renderer struct {
	origin  string
	blogURL string
	post    *template.Template
	listing *template.Template
	usage   map[string]TemplateInfo
}

// DefaultBlogURL is the published listing route offered to templates as blogURL.
const DefaultBlogURL = "/blog"

// Option configures a Renderer.
type Option func(*Renderer)

// WithBlogURL sets the route returned by the blogURL template function.
func WithBlogURL(route string) Option {
	return func(r *Renderer) { r.blogURL = "/" + strings.Trim(route, "/") }
}

// New parses the post and listing templates, preferring files in dir over the embedded defaults.
// An empty dir uses the embedded defaults only.
func New(dir, origin string, opts ...Option) (*Renderer, error) {
	r := &Renderer{origin: origin, blogURL: DefaultBlogURL, usage: map[string]TemplateInfo{}}
	for _, opt := range opts {
		opt(r)
	}

	var err error
	if r.post, err = r.load(dir, PostTemplate); err != nil {
		return nil, err
	}
	if r.listing, err = r.load(dir, ListingTemplate); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"blogURL": func() string { return r.blogURL },
	}
}

func (r *Renderer) load(dir, name string) (*template.Template, error) {
	raw, info, err := readTemplate(dir, name)
	if err != nil {
		return nil, ferrors.RenderError("load template").WithCause(err).
			WithContext("template", name).Build()
	}

	tmpl, err := template.New(name).Option("missingkey=error").Funcs(r.funcs()).Parse(string(raw))
	if err != nil {
		return nil, ferrors.RenderError("parse template").WithCause(err).
			WithContext("template", name).WithContext("source", info.Source).Build()
	}
	r.usage[name] = info
	slog.Debug("Loaded template", logfields.Template(name), slog.String("source", info.Source), logfields.Path(info.Path))
	return tmpl, nil
}

func readTemplate(dir, name string) ([]byte, TemplateInfo, error) {
	if dir != "" {
		p := filepath.Join(dir, name)
		// #nosec G304 -- p is a fixed template name below the configured templates dir
		b, err := os.ReadFile(p)
		switch {
		case err == nil:
			return b, TemplateInfo{Source: "file", Path: p}, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, TemplateInfo{}, err
		}
	}
	b, err := embeddedTemplates.ReadFile("templates_defaults/" + name)
	if err != nil {
		return nil, TemplateInfo{}, fmt.Errorf("embedded default template missing: %w", err)
	}
	return b, TemplateInfo{Source: "embedded"}, nil
}

// Usage reports the source of each loaded template.
func (r *Renderer) Usage() map[string]TemplateInfo {
	out := make(map[string]TemplateInfo, len(r.usage))
	for k, v := range r.usage {
		out[k] = v
	}
	return out
}

// RenderPage renders one post.
func (r *Renderer) RenderPage(p *post.Page) ([]byte, error) {
	return execute(r.post, p, p.Path)
}

// RenderCollection renders the listing page of c.
func (r *Renderer) RenderCollection(c *collection.Collection) ([]byte, error) {
	route := "/" + c.Route
	return execute(r.listing, Listing{
		Title:        c.Title,
		Description:  c.Description,
		Route:        route,
		CanonicalURL: r.origin + route,
		Origin:       r.origin,
		Pages:        c.Pages,
	}, route)
}

func execute(t *template.Template, data any, route string) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, ferrors.RenderError("execute template").WithCause(err).
			WithContext("template", t.Name()).WithContext("route", route).Build()
	}
	return buf.Bytes(), nil
}

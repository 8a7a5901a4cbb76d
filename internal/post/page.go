// Package post parses one Markdown content file into a fully derived Page.
package post

import (
	"html/template"

	"git.home.luguber.info/inful/postbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/postbuilder/internal/share"
)

// Page is one content file mapped to one published route. It is not modified after Parse returns.
type Page struct {
	Matter frontmatter.PostMatter
	// Slug is the source base name without extension; it is not unique across directories.
	Slug string
	// Path is the site-relative route, always starting with "/".
	Path           string
	CanonicalURL   string
	CoverImageURL  string
	Content        template.HTML
	ReadingTime    string
	ReadingSeconds int
	Share          []share.Link
	PageTitle      string
	Origin         string
	SourcePath     string
	// Fingerprint identifies the page's front matter and body (mdfp format).
	Fingerprint string
}

// OutputPath is the output-relative file the page renders to.
func (p *Page) OutputPath() string {
	return OutputPathFor(p.Path)
}

// OutputPathFor maps a route to its index.html file below the output root.
func OutputPathFor(route string) string {
	trimmed := trimSlashes(route)
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + "/index.html"
}

func trimSlashes(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

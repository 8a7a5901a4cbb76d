// Package markdown converts post bodies to HTML with goldmark.
package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// HighlightNone disables syntax highlighting of fenced code blocks.
const HighlightNone = "none"

// ErrConversion indicates goldmark failed to render a body.
var ErrConversion = errors.New("markdown conversion failed")

// Options configures the converter.
type Options struct {
	// HighlightStyle is a chroma style name, or HighlightNone.
	HighlightStyle string
}

// Converter turns a Markdown body (front matter already removed) into an HTML fragment.
type Converter interface {
	ToHTML(body []byte) (string, error)
}

// GoldmarkConverter renders GitHub-flavoured Markdown. Raw HTML in the body is passed through.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// New builds a GoldmarkConverter. An unknown highlight style is an error.
func New(opts Options) (*GoldmarkConverter, error) {
	exts := []goldmark.Extender{extension.GFM, extension.Footnote}

	switch opts.HighlightStyle {
	case HighlightNone:
	case "":
		exts = append(exts, highlighting.NewHighlighting())
	default:
		if _, ok := styles.Registry[opts.HighlightStyle]; !ok {
			return nil, fmt.Errorf("unknown highlight style %q", opts.HighlightStyle)
		}
		exts = append(exts, highlighting.NewHighlighting(highlighting.WithStyle(opts.HighlightStyle)))
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &GoldmarkConverter{md: md}, nil
}

// ToHTML converts body to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return buf.String(), nil
}

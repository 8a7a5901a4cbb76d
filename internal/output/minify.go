package output

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
)

const htmlMediaType = "text/html"

// Minifier compresses HTML documents.
type Minifier struct {
	m *minify.M
}

// NewMinifier returns a Minifier that keeps the doctype as written, keeps
// html/head/body tags and explicit end tags, keeps attribute quotes, and keeps
// default attribute values.
func NewMinifier() *Minifier {
	m := minify.New()
	m.Add(htmlMediaType, &mhtml.Minifier{
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})
	return &Minifier{m: m}
}

// HTML minifies one document.
func (mf *Minifier) HTML(src []byte) ([]byte, error) {
	out, err := mf.m.Bytes(htmlMediaType, src)
	if err != nil {
		return nil, fmt.Errorf("minify html: %w", err)
	}
	if doctype := leadingDoctype(src); doctype != nil {
		out = restoreDoctype(out, doctype)
	}
	return out, nil
}

// leadingDoctype returns the raw doctype token when it is the first
// non-whitespace, non-comment token of src.
func leadingDoctype(src []byte) []byte {
	z := html.NewTokenizer(bytes.NewReader(src))
	for {
		switch z.Next() {
		case html.DoctypeToken:
			return bytes.Clone(z.Raw())
		case html.CommentToken:
			continue
		case html.TextToken:
			if len(bytes.TrimSpace(z.Raw())) == 0 {
				continue
			}
			return nil
		default:
			return nil
		}
	}
}

var minifiedDoctype = regexp.MustCompile(`(?i)^<!doctype[^>]*>`)

func restoreDoctype(out, doctype []byte) []byte {
	loc := minifiedDoctype.FindIndex(out)
	if loc == nil {
		return out
	}
	restored := make([]byte, 0, len(out)-loc[1]+len(doctype))
	restored = append(restored, doctype...)
	return append(restored, out[loc[1]:]...)
}

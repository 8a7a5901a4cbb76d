package frontmatter

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ErrMissingField is returned (wrapped with the field name) when a required key is absent.
var ErrMissingField = errors.New("missing required front matter field")

// Cover holds the cover image reference of a post.
type Cover struct {
	Image string `yaml:"image" json:"image"`
}

// PostMatter is the typed front matter of a blog post.
type PostMatter struct {
	Title    string   `yaml:"title" json:"title"`
	Summary  string   `yaml:"summary" json:"summary"`
	Cover    Cover    `yaml:"cover" json:"cover"`
	Date     string   `yaml:"date" json:"date"`
	Modified *string  `yaml:"modified,omitempty" json:"modified,omitempty"`
	Tags     []string `yaml:"tags" json:"tags"`
}

// rawMatter mirrors PostMatter with pointers so absent keys can be told apart from empty ones.
type rawMatter struct {
	Title   *string `yaml:"title"`
	Summary *string `yaml:"summary"`
	Cover   *struct {
		Image *string `yaml:"image"`
	} `yaml:"cover"`
	Date     *string   `yaml:"date"`
	Modified *string   `yaml:"modified"`
	Tags     *[]string `yaml:"tags"`
}

// DecodePost decodes a front matter block into a PostMatter.
//
// title, summary, cover.image, date and tags are required; modified is optional.
// Unknown keys are ignored. Strings are normalised to Unicode NFC.
func DecodePost(fm []byte) (PostMatter, error) {
	var raw rawMatter
	if err := yaml.Unmarshal(fm, &raw); err != nil {
		return PostMatter{}, fmt.Errorf("decode front matter: %w", err)
	}

	missing := func(field string) (PostMatter, error) {
		return PostMatter{}, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	switch {
	case raw.Title == nil:
		return missing("title")
	case raw.Summary == nil:
		return missing("summary")
	case raw.Cover == nil || raw.Cover.Image == nil:
		return missing("cover.image")
	case raw.Date == nil:
		return missing("date")
	case raw.Tags == nil:
		return missing("tags")
	}

	m := PostMatter{
		Title:   nfc(*raw.Title),
		Summary: nfc(*raw.Summary),
		Cover:   Cover{Image: *raw.Cover.Image},
		Date:    *raw.Date,
		Tags:    make([]string, len(*raw.Tags)),
	}
	for i, tag := range *raw.Tags {
		m.Tags[i] = nfc(tag)
	}
	if raw.Modified != nil {
		mod := *raw.Modified
		m.Modified = &mod
	}
	return m, nil
}

func nfc(s string) string {
	return norm.NFC.String(s)
}

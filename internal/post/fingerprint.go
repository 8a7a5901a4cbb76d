package post

import (
	"strings"

	"git.home.luguber.info/inful/postbuilder/internal/frontmatter"
	"github.com/inful/mdfp"
)

// ComputeFingerprint returns the mdfp fingerprint of a post.
//
// Front matter is canonicalised first (keys sorted, LF newlines, single
// trailing newline trimmed) and any existing fingerprint key is excluded, so
// reformatting the YAML does not change the result.
func ComputeFingerprint(fm, body []byte) (string, error) {
	fields, err := frontmatter.ParseYAML(fm)
	if err != nil {
		return "", err
	}
	delete(fields, mdfp.FingerprintField)

	canonical := ""
	if len(fields) > 0 {
		serialized, err := frontmatter.SerializeYAML(fields)
		if err != nil {
			return "", err
		}
		canonical = strings.TrimSuffix(string(serialized), "\n")
	}

	return mdfp.CalculateFingerprintFromParts(canonical, normalizeNewlines(string(body))), nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

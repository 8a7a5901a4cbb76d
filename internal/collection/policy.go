package collection

import "git.home.luguber.info/inful/postbuilder/internal/foundation/normalization"

// Policy decides how a collection build reacts to a file that fails to parse.
type Policy string

const (
	// FailFast stops at the first failing file.
	FailFast Policy = "fail_fast"
	// CollectAll parses every file and reports all failures together. The build still fails.
	CollectAll Policy = "collect_all"
)

var policies = normalization.NewNormalizer("failure policy", map[string]Policy{
	string(FailFast):   FailFast,
	string(CollectAll): CollectAll,
})

// ParsePolicy maps a configuration value to a Policy. Empty means FailFast.
func ParsePolicy(s string) (Policy, error) {
	if normalization.Key(s) == "" {
		return FailFast, nil
	}
	return policies.Normalize(s)
}

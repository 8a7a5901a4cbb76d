package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/postbuilder/internal/share"
)

// ValidateConfig checks a defaulted configuration.
func ValidateConfig(cfg Config) error {
	validator := configurationValidator{config: cfg}
	return validator.validate()
}

type configurationValidator struct {
	config Config
}

func (cv configurationValidator) validate() error {
	if err := cv.validateOrigin(); err != nil {
		return err
	}
	if err := cv.validatePaths(); err != nil {
		return err
	}
	if err := cv.validateListings(); err != nil {
		return err
	}
	if err := cv.validateShare(); err != nil {
		return err
	}
	return cv.validateBuild()
}

func (cv configurationValidator) validateOrigin() error {
	u, err := url.Parse(cv.config.Origin)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", cv.config.Origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin %q must use http or https", cv.config.Origin)
	}
	if u.Host == "" {
		return fmt.Errorf("origin %q must include a host", cv.config.Origin)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin %q must not carry a query or fragment", cv.config.Origin)
	}
	return nil
}

func (cv configurationValidator) validatePaths() error {
	c := cv.config
	published := filepath.Clean(c.PublishedRoot())
	draft := filepath.Clean(c.DraftRoot())
	if published == draft {
		return fmt.Errorf("content.published and content.draft must differ (both %q)", published)
	}
	if filepath.Clean(c.Output) == filepath.Clean(c.Assets) {
		return fmt.Errorf("output and assets must differ (both %q)", c.Output)
	}
	for _, root := range []string{published, draft, filepath.Clean(c.Assets)} {
		inside, err := within(c.Output, root)
		if err != nil {
			return fmt.Errorf("resolve output %q: %w", c.Output, err)
		}
		if inside {
			return fmt.Errorf("output %q overlaps source directory %q", c.Output, root)
		}
	}
	return nil
}

// within reports whether path equals dir or lies below it.
func within(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

func (cv configurationValidator) validateListings() error {
	s := cv.config.Site
	if s.Published.Route == s.Draft.Route {
		return fmt.Errorf("site.published.route and site.draft.route must differ (both %q)", s.Published.Route)
	}
	return nil
}

func (cv configurationValidator) validateShare() error {
	seen := make(map[string]bool, len(cv.config.Share.Platforms))
	for _, p := range cv.config.Share.Platforms {
		if _, ok := share.Lookup(p); !ok {
			return fmt.Errorf("unknown share platform %q (known: %v)", p, share.Names())
		}
		if seen[p] {
			return fmt.Errorf("duplicate share platform %q", p)
		}
		seen[p] = true
	}
	return nil
}

func (cv configurationValidator) validateBuild() error {
	b := cv.config.Build
	if !slices.Contains([]string{FailurePolicyFailFast, FailurePolicyCollectAll}, b.FailurePolicy) {
		return fmt.Errorf("unknown build.failure_policy %q (use %s or %s)", b.FailurePolicy, FailurePolicyFailFast, FailurePolicyCollectAll)
	}
	if cv.config.Reading.WordsPerMinute <= 0 {
		return fmt.Errorf("reading.words_per_minute must be positive, got %d", cv.config.Reading.WordsPerMinute)
	}
	return nil
}

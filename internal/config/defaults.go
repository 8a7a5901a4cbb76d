package config

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/postbuilder/internal/foundation/normalization"
)

// Default values describe the lndev.nl site layout.
const (
	DefaultOrigin         = "https://lndev.nl"
	DefaultExtension      = ".md"
	DefaultPublishedDir   = "posts"
	DefaultDraftDir       = "drafts"
	DefaultAssetsDir      = "public"
	DefaultOutputDir      = "out"
	DefaultTemplatesDir   = "templates"
	DefaultHighlightStyle = "github"
	DefaultWordsPerMinute = 250

	FailurePolicyFailFast   = "fail_fast"
	FailurePolicyCollectAll = "collect_all"
)

// DefaultSharePlatforms is the platform set offered when share.platforms is omitted.
var DefaultSharePlatforms = []string{"x", "facebook", "linkedin", "reddit", "whatsapp", "telegram"}

// Default returns a fully populated configuration.
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Origin == "" {
		cfg.Origin = DefaultOrigin
	}
	cfg.Origin = strings.TrimRight(cfg.Origin, "/")

	applyContentDefaults(&cfg.Content)
	if cfg.Assets == "" {
		cfg.Assets = DefaultAssetsDir
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutputDir
	}
	if cfg.Templates == "" {
		cfg.Templates = DefaultTemplatesDir
	}

	applySiteDefaults(&cfg.Site)

	if len(cfg.Share.Platforms) == 0 {
		cfg.Share.Platforms = slices.Clone(DefaultSharePlatforms)
	}
	for i, p := range cfg.Share.Platforms {
		cfg.Share.Platforms[i] = strings.ToLower(strings.TrimSpace(p))
	}

	if cfg.Markdown.HighlightStyle == "" {
		cfg.Markdown.HighlightStyle = DefaultHighlightStyle
	}
	if cfg.Reading.WordsPerMinute == 0 {
		cfg.Reading.WordsPerMinute = DefaultWordsPerMinute
	}
	cfg.Build.FailurePolicy = normalization.Key(cfg.Build.FailurePolicy)
	if cfg.Build.FailurePolicy == "" {
		cfg.Build.FailurePolicy = FailurePolicyFailFast
	}
}

func applyContentDefaults(c *ContentConfig) {
	if c.Base == "" {
		c.Base = "."
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.Published == "" {
		c.Published = DefaultPublishedDir
	}
	if c.Draft == "" {
		c.Draft = DefaultDraftDir
	}
}

func applySiteDefaults(s *SiteConfig) {
	if s.TitlePrefix == "" {
		s.TitlePrefix = "lndev - "
	}
	if s.Published.Title == "" {
		s.Published.Title = "lndev - blog"
	}
	if s.Published.Description == "" {
		s.Published.Description = "Where insights are shared on development on the lightning network."
	}
	if s.Published.Route == "" {
		s.Published.Route = "blog"
	}
	if s.Draft.Title == "" {
		s.Draft.Title = "lndev - drafts"
	}
	if s.Draft.Description == "" {
		s.Draft.Description = "Currently unfinished drafts"
	}
	if s.Draft.Route == "" {
		s.Draft.Route = "drafts"
	}
	s.Published.Route = strings.Trim(s.Published.Route, "/")
	s.Draft.Route = strings.Trim(s.Draft.Route, "/")
}

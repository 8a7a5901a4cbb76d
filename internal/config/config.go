// Package config loads and validates the postbuilder configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the complete build configuration. It is constructed once per invocation and
// passed by value to every component that needs it.
type Config struct {
	// Origin is the absolute base URL used for canonical and cover image links.
	Origin    string         `yaml:"origin"`
	Content   ContentConfig  `yaml:"content"`
	Assets    string         `yaml:"assets"`
	Output    string         `yaml:"output"`
	Templates string         `yaml:"templates,omitempty"`
	Site      SiteConfig     `yaml:"site"`
	Share     ShareConfig    `yaml:"share"`
	Markdown  MarkdownConfig `yaml:"markdown"`
	Reading   ReadingConfig  `yaml:"reading"`
	Build     BuildConfig    `yaml:"build"`
}

// ContentConfig locates the content sets. Published and Draft are resolved against Base,
// and route paths are derived relative to Base.
type ContentConfig struct {
	Base      string `yaml:"base"`
	Extension string `yaml:"extension"`
	Published string `yaml:"published"`
	Draft     string `yaml:"draft"`
	// AllowMissingDraft builds an empty draft listing when the draft directory does not exist.
	AllowMissingDraft bool `yaml:"allow_missing_draft,omitempty"`
}

// SiteConfig holds presentation settings handed to templates.
type SiteConfig struct {
	TitlePrefix string        `yaml:"title_prefix"`
	Published   ListingConfig `yaml:"published"`
	Draft       ListingConfig `yaml:"draft"`
}

// ListingConfig describes one listing page.
type ListingConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Route       string `yaml:"route"`
}

// ShareConfig selects the social platforms offered on each post.
type ShareConfig struct {
	Platforms []string `yaml:"platforms"`
}

// MarkdownConfig configures the Markdown converter.
type MarkdownConfig struct {
	// HighlightStyle names a chroma style; "none" disables syntax highlighting.
	HighlightStyle string `yaml:"highlight_style"`
}

// ReadingConfig configures the reading time estimator.
type ReadingConfig struct {
	WordsPerMinute int `yaml:"words_per_minute"`
}

// BuildConfig configures the build driver.
type BuildConfig struct {
	FailurePolicy string `yaml:"failure_policy"`
	ReportFile    string `yaml:"report_file,omitempty"`
	MetricsFile   string `yaml:"metrics_file,omitempty"`
}

// PublishedRoot returns the published content directory.
func (c Config) PublishedRoot() string {
	return filepath.Join(c.Content.Base, c.Content.Published)
}

// DraftRoot returns the draft content directory.
func (c Config) DraftRoot() string {
	return filepath.Join(c.Content.Base, c.Content.Draft)
}

// Load loads configuration from the specified file.
//
// Environment variables from .env/.env.local are loaded first (never overriding the process
// environment), ${VAR} references in the file are expanded, defaults are applied and the
// result is validated.
func Load(configPath string) (Config, error) {
	if _, err := loadEnvFiles(); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	// #nosec G304 -- configPath is supplied by the operator.
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes, defaults and validates configuration YAML. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

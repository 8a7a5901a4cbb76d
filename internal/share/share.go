// Package share builds social-share links for a post.
package share

import (
	"fmt"
	"net/url"
	"strings"
)

// Platform describes one social network and its share URL shape.
type Platform struct {
	// Key is the configuration identifier (e.g. "x", "linkedin").
	Key string
	// Name is the display name used in labels.
	Name  string
	build func(f fields) string
}

// Link is one rendered share entry.
type Link struct {
	Platform string
	Name     string
	URL      string
	Label    string
}

// fields holds the form-encoded values substituted into share URLs.
type fields struct {
	title string
	url   string
	tags  string
}

var platforms = []Platform{
	{Key: "x", Name: "X", build: func(f fields) string {
		return fmt.Sprintf("https://x.com/intent/tweet/?text=%s&url=%s&hashtags=%s", f.title, f.url, f.tags)
	}},
	{Key: "facebook", Name: "Facebook", build: func(f fields) string {
		return "https://facebook.com/sharer/sharer.php?u=" + f.url
	}},
	{Key: "linkedin", Name: "LinkedIn", build: func(f fields) string {
		return fmt.Sprintf("https://www.linkedin.com/shareArticle?mini=true&url=%s&title=%s&summary=%s&source=%s", f.url, f.title, f.title, f.url)
	}},
	{Key: "reddit", Name: "Reddit", build: func(f fields) string {
		return fmt.Sprintf("https://reddit.com/submit?url=%s&title=%s", f.url, f.title)
	}},
	{Key: "whatsapp", Name: "WhatsApp", build: func(f fields) string {
		return fmt.Sprintf("https://api.whatsapp.com/send?text=%s%%20-%%20%s", f.title, f.url)
	}},
	{Key: "telegram", Name: "Telegram", build: func(f fields) string {
		return fmt.Sprintf("https://telegram.me/share/url?text=%s&url=%s", f.title, f.url)
	}},
	// Nostr has no web intent; the link is a placeholder for client-side handling.
	{Key: "nostr", Name: "Nostr", build: func(fields) string { return "#" }},
}

// Lookup returns the platform registered under key.
func Lookup(key string) (Platform, bool) {
	for _, p := range platforms {
		if p.Key == key {
			return p, true
		}
	}
	return Platform{}, false
}

// Names lists every known platform key in table order.
func Names() []string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = p.Key
	}
	return names
}

// Label renders the accessible label for a share link.
func Label(title, platformName string) string {
	return fmt.Sprintf("Share %s on %s", title, platformName)
}

// Encode form-encodes a value the way share endpoints expect (space becomes '+').
func Encode(s string) string {
	return url.QueryEscape(s)
}

// Links builds one Link per key, in the order given. Unknown keys are an error.
func Links(keys []string, title, canonicalURL string, tags []string) ([]Link, error) {
	f := fields{
		title: Encode(title),
		url:   Encode(canonicalURL),
		tags:  Encode(strings.Join(tags, ",")),
	}

	links := make([]Link, 0, len(keys))
	for _, key := range keys {
		p, ok := Lookup(key)
		if !ok {
			return nil, fmt.Errorf("unknown share platform %q", key)
		}
		links = append(links, Link{
			Platform: p.Key,
			Name:     p.Name,
			URL:      p.build(f),
			Label:    Label(title, p.Name),
		})
	}
	return links, nil
}

// ABOUTME: Platform domain models describing where and how courses are scraped
// ABOUTME: Hint rules make per-platform markup adaptation data-driven

package domain

import (
	"net/url"
	"strings"
	"time"
)

// HintRule locates course cards by element tag and class keywords.
// A card matches when its class attribute contains any of the keywords.
type HintRule struct {
	Tag     string   `json:"tag" yaml:"tag"`
	Classes []string `json:"classes" yaml:"classes"`
}

// PlatformConfig describes one learning platform
type PlatformConfig struct {
	// Name is the platform label attached to every record
	Name string `json:"name" yaml:"name"`

	// ListingURL is the page that lists the free courses
	ListingURL string `json:"listing_url" yaml:"listing_url"`

	// BaseURL is prepended to relative course links; empty means the listing URL origin
	BaseURL string `json:"base_url,omitempty" yaml:"base_url"`

	// HintSets is the ordered fallback chain used to locate cards
	HintSets []HintRule `json:"hint_sets" yaml:"hint_sets"`
}

// LinkBase returns the URL relative links are resolved against
func (p PlatformConfig) LinkBase() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}
	u, err := url.Parse(p.ListingURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// ResolveLink turns a card href into an absolute URL.
// Absolute links are returned unchanged; relative ones are joined to LinkBase.
func (p PlatformConfig) ResolveLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	base := p.LinkBase()
	if base == "" {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return base + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return base + href
	}
	return baseURL.ResolveReference(ref).String()
}

// PlatformStatus reports the outcome of the last scrape of a platform
type PlatformStatus struct {
	Platform  string        `json:"platform"`
	Count     int           `json:"count"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	ScrapedAt time.Time     `json:"scraped_at"`
}

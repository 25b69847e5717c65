// ABOUTME: Configuration options for the Course Finder library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package coursefinder

import (
	"time"

	"coursefinder-api/core/config"
	"coursefinder-api/core/domain"
	"coursefinder-api/core/fetch"
	"coursefinder-api/core/interfaces"
	"coursefinder-api/core/scraper"
	"coursefinder-api/core/workers"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithPlatforms replaces the built-in platform table
func WithPlatforms(platforms []domain.PlatformConfig) Option {
	return func(c *Config) error {
		if len(platforms) == 0 {
			return NewError(ErrorTypeConfiguration, "at least one platform is required")
		}
		c.Platforms = platforms
		return nil
	}
}

// WithBrowser sets the page backend used by every scraper
func WithBrowser(browser interfaces.Browser) Option {
	return func(c *Config) error {
		c.Browser = browser
		c.newBrowser = nil
		return nil
	}
}

// withBrowserFactory builds the browser in NewClient, after every option has run
func withBrowserFactory(build func(logger interfaces.Logger) interfaces.Browser) Option {
	return func(c *Config) error {
		c.Browser = nil
		c.newBrowser = build
		return nil
	}
}

// WithEmbedder sets the embedding backend used for ranking
func WithEmbedder(embedder interfaces.Embedder) Option {
	return func(c *Config) error {
		c.Embedder = embedder
		return nil
	}
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithFetchOptions sets the page retry and scroll policy
func WithFetchOptions(opts fetch.Options) Option {
	return func(c *Config) error {
		c.FetchOptions = opts
		return nil
	}
}

// WithCorpusTTL sets how long a built corpus is served before a rebuild
func WithCorpusTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl <= 0 {
			return NewError(ErrorTypeConfiguration, "corpus TTL must be positive").
				WithContext("ttl", ttl.String())
		}
		c.CorpusTTL = ttl
		return nil
	}
}

// WithScrapeWorkers bounds how many platforms are scraped at once
func WithScrapeWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewError(ErrorTypeConfiguration, "scrape workers must be at least 1").
				WithContext("workers", n)
		}
		c.ScrapeWorkers = n
		return nil
	}
}

// WithMatchOptions tunes the semantic matcher
func WithMatchOptions(opts ...config.MatchOption) Option {
	return func(c *Config) error {
		c.MatchOptions = append(c.MatchOptions, opts...)
		return nil
	}
}

// WithResultCache enables or disables caching of ranked results
func WithResultCache(enabled bool) Option {
	return func(c *Config) error {
		c.CacheResults = enabled
		return nil
	}
}

// WithWorkerConfig sets the background refresh schedule
func WithWorkerConfig(config workers.WorkerConfig) Option {
	return func(c *Config) error {
		c.WorkerConfig = config
		return nil
	}
}

// WithBackgroundRefresh enables or disables the background refresh worker
func WithBackgroundRefresh(enabled bool) Option {
	return func(c *Config) error {
		c.EnableBackgroundRefresh = enabled
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Platforms:               scraper.DefaultPlatforms(),
		FetchOptions:            fetch.DefaultOptions(),
		CorpusTTL:               time.Hour,
		ScrapeWorkers:           4,
		CacheResults:            true,
		WorkerConfig:            workers.DefaultWorkerConfig(),
		EnableBackgroundRefresh: false,
	}
}

// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions and options for the browser, embedder, cache and logger

package coursefinder

import (
	"net/http"
	"time"

	"coursefinder-api/core/domain"
	"coursefinder-api/core/interfaces"
	"coursefinder-api/core/scraper"
	"coursefinder-api/infrastructure/browser/playwright"
	"coursefinder-api/infrastructure/browser/static"
	"coursefinder-api/infrastructure/cache/memory"
	"coursefinder-api/infrastructure/embedding/hashing"
	"coursefinder-api/infrastructure/embedding/ollama"
	"coursefinder-api/infrastructure/embedding/openai"
	httpInfra "coursefinder-api/infrastructure/http/standard"
	"coursefinder-api/infrastructure/logger/logrus"
)

// DefaultBrowser creates a plain HTTP page backend that needs no Chromium
func DefaultBrowser() interfaces.Browser {
	return static.New(30 * time.Second)
}

// DefaultEmbedder creates the dependency-free hashing embedder
func DefaultEmbedder() interfaces.Embedder {
	return hashing.New(hashing.DefaultDimensions)
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultLogger creates a default logger that writes JSON to stdout
func DefaultLogger() interfaces.Logger {
	return logrus.New(logrus.Options{Level: "info", Format: "json"})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return interfaces.NopLogger{}
}

// WithDefaultDependencies fills in any dependency that was not configured
func WithDefaultDependencies() Option {
	return func(c *Config) error {
		if c.Browser == nil && c.newBrowser == nil {
			c.Browser = DefaultBrowser()
		}
		if c.Embedder == nil {
			c.Embedder = DefaultEmbedder()
		}
		if c.Cache == nil {
			c.Cache = DefaultMemoryCache()
		}
		if c.Logger == nil {
			c.Logger = DefaultLogger()
		}
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

// WithPlaywright renders pages in headless Chromium. The client closes it on Close.
func WithPlaywright(opts playwright.Options) Option {
	return withBrowserFactory(func(logger interfaces.Logger) interfaces.Browser {
		return playwright.New(opts, logger)
	})
}

// WithOllama ranks with an Ollama embedding model
func WithOllama(baseURL, model string, timeout time.Duration) Option {
	return func(c *Config) error {
		if baseURL == "" {
			return NewError(ErrorTypeConfiguration, "ollama base URL is required")
		}
		c.Embedder = ollama.New(baseURL, model, httpInfra.NewStandardHTTPClient(timeout))
		return nil
	}
}

// WithOpenAI ranks with an OpenAI-compatible embeddings endpoint
func WithOpenAI(apiKey, baseURL, model string, timeout time.Duration) Option {
	return func(c *Config) error {
		if apiKey == "" && baseURL == "" {
			return NewError(ErrorTypeConfiguration, "openai needs an API key or a base URL")
		}
		c.Embedder = openai.New(openai.Config{
			APIKey:     apiKey,
			BaseURL:    baseURL,
			Model:      model,
			HTTPClient: &http.Client{Timeout: timeout},
		})
		return nil
	}
}

// DefaultPlatforms returns the built-in platform table
func DefaultPlatforms() []domain.PlatformConfig {
	return scraper.DefaultPlatforms()
}

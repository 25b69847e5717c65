// ABOUTME: Main client for the Course Finder library providing course aggregation and search
// ABOUTME: Offers a clean API for using core functionality without HTTP dependencies

package coursefinder

import (
	"context"
	"io"
	"sync"
	"time"

	"coursefinder-api/core/aggregator"
	"coursefinder-api/core/config"
	"coursefinder-api/core/domain"
	"coursefinder-api/core/extract"
	"coursefinder-api/core/fetch"
	"coursefinder-api/core/interfaces"
	"coursefinder-api/core/matcher"
	"coursefinder-api/core/scraper"
	"coursefinder-api/core/search"
	"coursefinder-api/core/workers"
)

// Client is the main entry point for the Course Finder library
type Client struct {
	// Core services
	aggregator    *aggregator.Aggregator
	searchService *search.SearchService

	// Worker for background refreshes
	refreshWorker *workers.RefreshWorker

	// Dependencies
	deps interfaces.Dependencies

	// Configuration
	config Config

	mu     sync.Mutex
	closed bool
}

// Config holds the configuration for the client
type Config struct {
	// Platforms is the ordered list of course sources
	Platforms []domain.PlatformConfig

	// Browser renders listing pages
	Browser interfaces.Browser

	// newBrowser builds the browser once the final logger is known
	newBrowser func(logger interfaces.Logger) interfaces.Browser

	// Embedder produces vectors for ranking; nil makes Search unavailable
	Embedder interfaces.Embedder

	// Cache stores title vectors and ranked results
	Cache interfaces.Cache

	// Logger configuration
	Logger interfaces.Logger

	// FetchOptions is the page retry and scroll policy
	FetchOptions fetch.Options

	// CorpusTTL is how long a built corpus is served
	CorpusTTL time.Duration

	// ScrapeWorkers bounds concurrent platform scrapes
	ScrapeWorkers int

	// MatchOptions tune the semantic matcher
	MatchOptions []config.MatchOption

	// CacheResults stores ranked results per corpus generation
	CacheResults bool

	// Worker configuration
	WorkerConfig workers.WorkerConfig

	// Enable background refresh
	EnableBackgroundRefresh bool
}

// NewClient creates a new Course Finder client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if config.newBrowser != nil {
		config.Browser = config.newBrowser(config.Logger)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		Cache:  config.Cache,
		Logger: config.Logger,
	}

	sources := buildSources(config)
	agg := aggregator.New(sources, aggregator.Config{
		TTL:     config.CorpusTTL,
		Workers: config.ScrapeWorkers,
	}, config.Logger)

	ranker := matcher.New(config.Embedder, config.Cache, config.Logger, config.MatchOptions...)

	resultTTL := time.Duration(0)
	if config.CacheResults {
		resultTTL = config.CorpusTTL
	}

	client := &Client{
		aggregator:    agg,
		searchService: search.NewSearchService(deps, agg, ranker, resultTTL),
		deps:          deps,
		config:        config,
	}

	if config.EnableBackgroundRefresh {
		client.refreshWorker = workers.NewRefreshWorker(agg, config.Logger, config.WorkerConfig)
		if err := client.refreshWorker.Start(); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// buildSources creates one scraper per platform, all sharing the browser
func buildSources(config Config) []aggregator.Source {
	fetcher := fetch.NewFetcher(config.Browser, config.Logger, config.FetchOptions)
	extractor := extract.New(config.Logger)

	sources := make([]aggregator.Source, 0, len(config.Platforms))
	for _, p := range config.Platforms {
		sources = append(sources, scraper.New(p, fetcher, extractor, config.Logger))
	}
	return sources
}

// Close stops the refresh worker and releases the browser
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	var firstErr error
	if c.refreshWorker != nil {
		firstErr = c.refreshWorker.Stop()
	}
	if closer, ok := c.config.Browser.(io.Closer); ok {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Search ranks the current courses against query and returns up to 8 distinct titles
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if c.isClosed() {
		return nil, ErrClientClosed
	}

	domainResults, err := c.searchService.Search(ctx, query)
	if err != nil {
		return nil, fromCoreError(err)
	}

	results := make([]SearchResult, len(domainResults))
	for i, r := range domainResults {
		results[i] = domainResultToPublic(r)
	}
	return results, nil
}

// Courses returns every course in the current corpus, building it if needed
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	if c.isClosed() {
		return nil, ErrClientClosed
	}

	corpus := c.aggregator.GetCorpus(ctx)
	courses := make([]Course, len(corpus.Courses))
	for i, course := range corpus.Courses {
		courses[i] = domainCourseToPublic(course)
	}
	return courses, ctx.Err()
}

// Refresh rebuilds the corpus now
func (c *Client) Refresh(ctx context.Context) (*RefreshResult, error) {
	if c.isClosed() {
		return nil, ErrClientClosed
	}

	corpus, err := c.aggregator.Refresh(ctx)
	if err != nil {
		return nil, fromCoreError(err)
	}
	return &RefreshResult{
		Courses:    corpus.Len(),
		Generation: corpus.Generation,
		BuiltAt:    corpus.BuiltAt,
	}, nil
}

// Platforms returns the configured platforms in registration order
func (c *Client) Platforms() []Platform {
	configs := c.aggregator.Platforms()
	platforms := make([]Platform, len(configs))
	for i, p := range configs {
		platforms[i] = Platform{Name: p.Name, ListingURL: p.ListingURL}
	}
	return platforms
}

// Statuses returns the outcome of the last scrape of each platform
func (c *Client) Statuses() []PlatformStatus {
	statuses := c.aggregator.Statuses()
	out := make([]PlatformStatus, len(statuses))
	for i, s := range statuses {
		out[i] = domainStatusToPublic(s)
	}
	return out
}

// CorpusProvider exposes the aggregator for presentation layers
func (c *Client) CorpusProvider() interfaces.CorpusProvider {
	return c.aggregator
}

// SearchService exposes the search service for presentation layers
func (c *Client) SearchService() interfaces.SearchService {
	return c.searchService
}

// RefreshWorker returns the background worker, or nil when it is disabled
func (c *Client) RefreshWorker() *workers.RefreshWorker {
	return c.refreshWorker
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.Browser == nil {
		return NewError(ErrorTypeConfiguration, "browser is required")
	}

	if config.Cache == nil {
		return NewError(ErrorTypeConfiguration, "cache is required")
	}

	if config.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}

	if len(config.Platforms) == 0 {
		return NewError(ErrorTypeConfiguration, "at least one platform is required")
	}

	// A missing embedder is allowed; Search then reports ErrUnavailable

	return nil
}

// Package core contains the business logic for the Course Finder API.
// It is framework-agnostic and can be used without the HTTP layer.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (CourseRecord, Corpus, PlatformConfig, HintSet)
// - fetch: Page loading with retries and scroll-to-bottom
// - extract: Card extraction driven by ordered hint sets
// - scraper: One course source per platform
// - aggregator: Concurrent scraping into a TTL-cached corpus
// - matcher: Cosine-similarity ranking over title embeddings
// - search: Query validation, result caching and ranking
// - workers: Background corpus refresh
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (browser, cache, embedder, logger)
//
// # Usage Example
//
//	fetcher := fetch.NewFetcher(browser, logger, fetch.DefaultOptions())
//	extractor := extract.New(logger)
//
//	var sources []aggregator.Source
//	for _, p := range scraper.DefaultPlatforms() {
//	    sources = append(sources, scraper.New(p, fetcher, extractor, logger))
//	}
//
//	agg := aggregator.New(sources, aggregator.DefaultConfig(), logger)
//	ranker := matcher.New(embedder, cache, logger)
//	svc := search.NewSearchService(deps, agg, ranker, time.Hour)
//
//	results, err := svc.Search(ctx, "python for beginners")
package core

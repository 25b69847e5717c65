// ABOUTME: Aggregator runs every platform scraper, merges and deduplicates their records
// ABOUTME: Maintains the TTL corpus cache with single-flight rebuilds and stale-serve on failure

package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"coursefinder-api/core/domain"
	"coursefinder-api/core/interfaces"
	"coursefinder-api/core/scraper"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const rebuildKey = "corpus"

// ErrAllSourcesFailed is returned by Refresh when every scraper failed.
// The rebuild still stamps the cache, so GetCorpus does not retry until the TTL expires.
var ErrAllSourcesFailed = errors.New("all platform scrapers failed")

// Source is a platform scraper as seen by the aggregator
type Source interface {
	Name() string
	Platform() domain.PlatformConfig
	Run(ctx context.Context) scraper.Result
}

// MergeFunc combines per-source records, in registration order, into corpus courses
type MergeFunc func(perSource [][]domain.CourseRecord) ([]domain.CourseRecord, error)

// Config holds aggregator settings
type Config struct {
	TTL     time.Duration
	Workers int
}

// DefaultConfig returns the default aggregator configuration
func DefaultConfig() Config {
	return Config{
		TTL:     time.Hour,
		Workers: 4,
	}
}

// Option customizes an Aggregator
type Option func(*Aggregator)

// WithClock sets the time source used for TTL decisions
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithMerge replaces the merge step
func WithMerge(merge MergeFunc) Option {
	return func(a *Aggregator) {
		if merge != nil {
			a.merge = merge
		}
	}
}

// Aggregator builds and caches the unified course corpus
type Aggregator struct {
	sources    []Source
	cache      *CorpusCache
	ttl        time.Duration
	sem        *semaphore.Weighted
	group      singleflight.Group
	merge      MergeFunc
	now        func() time.Time
	generation atomic.Uint64
	logger     interfaces.Logger

	statusMu sync.RWMutex
	statuses []domain.PlatformStatus
}

// New creates an Aggregator over the given sources
func New(sources []Source, config Config, logger interfaces.Logger, opts ...Option) *Aggregator {
	defaults := DefaultConfig()
	if config.TTL <= 0 {
		config.TTL = defaults.TTL
	}
	if config.Workers <= 0 {
		config.Workers = defaults.Workers
	}

	a := &Aggregator{
		sources: sources,
		cache:   NewCorpusCache(),
		ttl:     config.TTL,
		sem:     semaphore.NewWeighted(int64(config.Workers)),
		merge:   MergeRecords,
		now:     time.Now,
		logger:  interfaces.LoggerOrNop(logger),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetCorpus returns the cached corpus while fresh and rebuilds it otherwise.
// The result is never nil; on rebuild failure the previous corpus is served.
func (a *Aggregator) GetCorpus(ctx context.Context) *domain.Corpus {
	if a.cache.Fresh(a.now(), a.ttl) {
		corpus, _ := a.cache.Get()
		a.logger.Debug("Returning cached courses", map[string]interface{}{
			"courses":    corpus.Len(),
			"generation": corpus.Generation,
		})
		return corpus
	}

	corpus, _ := a.rebuildShared(ctx)
	return corpus
}

// Current returns the corpus being served without triggering a rebuild
func (a *Aggregator) Current() *domain.Corpus {
	corpus, _ := a.cache.Get()
	return corpus
}

// Refresh forces a rebuild regardless of the cache age.
// On failure it returns the corpus still being served together with the error.
func (a *Aggregator) Refresh(ctx context.Context) (*domain.Corpus, error) {
	return a.rebuildShared(ctx)
}

// Invalidate marks the cached corpus stale so the next read rebuilds it
func (a *Aggregator) Invalidate() {
	a.cache.Invalidate()
}

// Statuses returns the per-platform outcome of the last rebuild
func (a *Aggregator) Statuses() []domain.PlatformStatus {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	out := make([]domain.PlatformStatus, len(a.statuses))
	copy(out, a.statuses)
	return out
}

// Platforms returns the registered platform configurations in order
func (a *Aggregator) Platforms() []domain.PlatformConfig {
	out := make([]domain.PlatformConfig, 0, len(a.sources))
	for _, s := range a.sources {
		out = append(out, s.Platform())
	}
	return out
}

type rebuildResult struct {
	corpus *domain.Corpus
	err    error
}

// rebuildShared coordinates concurrent callers on a single rebuild
func (a *Aggregator) rebuildShared(ctx context.Context) (*domain.Corpus, error) {
	// the rebuild outlives any single caller that shares it
	rebuildCtx := context.WithoutCancel(ctx)

	ch := a.group.DoChan(rebuildKey, func() (interface{}, error) {
		corpus, err := a.rebuild(rebuildCtx)
		return rebuildResult{corpus: corpus, err: err}, nil
	})

	select {
	case res := <-ch:
		r := res.Val.(rebuildResult)
		return r.corpus, r.err
	case <-ctx.Done():
		corpus, _ := a.cache.Get()
		return corpus, ctx.Err()
	}
}

// rebuild scrapes every source, merges the records and publishes a new corpus.
// Failures keep the previously published corpus.
func (a *Aggregator) rebuild(ctx context.Context) (*domain.Corpus, error) {
	prior, _ := a.cache.Get()
	start := a.now()

	a.logger.Info("Starting to scrape courses from all platforms", map[string]interface{}{
		"platforms": len(a.sources),
	})

	results := a.collect(ctx)
	a.setStatuses(results)

	courses, err := a.safeMerge(results)
	if err != nil {
		a.logger.Error("Error rebuilding corpus, serving previous courses", map[string]interface{}{
			"error":            err.Error(),
			"previous_courses": prior.Len(),
		})
		return prior, err
	}

	// a total outage restarts the TTL on the corpus being served
	if allFailed(results) && !prior.IsEmpty() {
		a.cache.Touch(prior, a.now())
		a.logger.Warn("All platforms failed, serving previous courses", map[string]interface{}{
			"previous_courses": prior.Len(),
			"generation":       prior.Generation,
		})
		return prior, ErrAllSourcesFailed
	}

	now := a.now()
	next := &domain.Corpus{
		Courses:    courses,
		BuiltAt:    now,
		Generation: a.generation.Add(1),
	}
	if !a.cache.ReplaceIfCurrent(prior, next, now) {
		current, _ := a.cache.Get()
		a.logger.Warn("Corpus changed during rebuild, keeping newer corpus", map[string]interface{}{
			"generation": current.Generation,
		})
		return current, nil
	}

	a.logger.Info("Total unique courses scraped", map[string]interface{}{
		"courses":    next.Len(),
		"generation": next.Generation,
		"duration":   now.Sub(start).String(),
	})
	if allFailed(results) {
		return next, ErrAllSourcesFailed
	}
	return next, nil
}

// collect runs every source over the bounded worker pool.
// Results are indexed by registration order regardless of completion order.
func (a *Aggregator) collect(ctx context.Context) []scraper.Result {
	results := make([]scraper.Result, len(a.sources))
	var wg sync.WaitGroup

	for i, src := range a.sources {
		if err := a.sem.Acquire(ctx, 1); err != nil {
			results[i] = scraper.Result{
				Records: []domain.CourseRecord{},
				Status:  domain.PlatformStatus{Platform: src.Name(), Error: err.Error()},
			}
			continue
		}

		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			defer a.sem.Release(1)
			results[i] = runSource(ctx, src)
		}(i, src)
	}

	wg.Wait()
	return results
}

// runSource shields the pool from a source that panics despite its own guard
func runSource(ctx context.Context, src Source) (result scraper.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = scraper.Result{
				Records: []domain.CourseRecord{},
				Status:  domain.PlatformStatus{Platform: src.Name(), Error: fmt.Sprintf("panic: %v", r)},
			}
		}
	}()
	return src.Run(ctx)
}

func (a *Aggregator) safeMerge(results []scraper.Result) (courses []domain.CourseRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			courses, err = nil, fmt.Errorf("merge panicked: %v", r)
		}
	}()

	perSource := make([][]domain.CourseRecord, len(results))
	for i, r := range results {
		perSource[i] = r.Records
	}
	return a.merge(perSource)
}

func (a *Aggregator) setStatuses(results []scraper.Result) {
	statuses := make([]domain.PlatformStatus, len(results))
	for i, r := range results {
		statuses[i] = r.Status
	}
	a.statusMu.Lock()
	a.statuses = statuses
	a.statusMu.Unlock()
}

func allFailed(results []scraper.Result) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r.Status.Error == "" {
			return false
		}
	}
	return true
}

// MergeRecords concatenates per-source records and keeps the first record of each title
func MergeRecords(perSource [][]domain.CourseRecord) ([]domain.CourseRecord, error) {
	total := 0
	for _, records := range perSource {
		total += len(records)
	}
	all := make([]domain.CourseRecord, 0, total)
	for _, records := range perSource {
		all = append(all, records...)
	}
	return domain.DedupByTitle(all), nil
}

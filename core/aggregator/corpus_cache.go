// ABOUTME: Corpus cache holds the current corpus and its build timestamp as one atomic entry
// ABOUTME: Readers always observe a complete corpus, never a partially built one

package aggregator

import (
	"sync/atomic"
	"time"

	"coursefinder-api/core/domain"
)

type cacheEntry struct {
	corpus    *domain.Corpus
	timestamp time.Time
}

// CorpusCache owns the (corpus, timestamp) pair
type CorpusCache struct {
	current atomic.Pointer[cacheEntry]
}

// NewCorpusCache creates a cache holding an empty, never-built corpus
func NewCorpusCache() *CorpusCache {
	c := &CorpusCache{}
	c.current.Store(&cacheEntry{corpus: domain.EmptyCorpus()})
	return c
}

// Get returns the current corpus and the time it was published.
// A zero timestamp means no successful build is being served.
func (c *CorpusCache) Get() (*domain.Corpus, time.Time) {
	e := c.current.Load()
	return e.corpus, e.timestamp
}

// Fresh reports whether the cached corpus was built less than ttl ago
func (c *CorpusCache) Fresh(now time.Time, ttl time.Duration) bool {
	e := c.current.Load()
	if e.timestamp.IsZero() {
		return false
	}
	return now.Sub(e.timestamp) < ttl
}

// Invalidate marks the cached corpus stale while keeping it available
func (c *CorpusCache) Invalidate() {
	for {
		e := c.current.Load()
		if e.timestamp.IsZero() {
			return
		}
		if c.current.CompareAndSwap(e, &cacheEntry{corpus: e.corpus}) {
			return
		}
	}
}

// ReplaceIfCurrent publishes next if the cache still holds expected.
// It reports whether the swap happened.
func (c *CorpusCache) ReplaceIfCurrent(expected, next *domain.Corpus, at time.Time) bool {
	if next == nil {
		return false
	}
	for {
		e := c.current.Load()
		if e.corpus != expected {
			return false
		}
		if c.current.CompareAndSwap(e, &cacheEntry{corpus: next, timestamp: at}) {
			return true
		}
	}
}

// Touch restamps the entry holding expected so the TTL starts again.
// It reports whether expected was still current.
func (c *CorpusCache) Touch(expected *domain.Corpus, at time.Time) bool {
	return c.ReplaceIfCurrent(expected, expected, at)
}

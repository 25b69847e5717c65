// ABOUTME: Match configuration for service-level control of ranking and caching
// ABOUTME: Provides configuration options independent of HTTP request structures

package config

import "time"

// MatchConfig controls how search results are ranked and cached
type MatchConfig struct {
	// PoolSize is the number of top candidates considered before deduplication
	PoolSize int

	// ResultCap is the maximum number of results returned
	ResultCap int

	// CacheVectors controls whether title vectors are reused across queries
	CacheVectors bool

	// VectorTTL is how long a cached title vector is kept
	VectorTTL time.Duration
}

// DefaultMatchConfig returns the default configuration
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		PoolSize:     30,
		ResultCap:    8,
		CacheVectors: true,
		VectorTTL:    24 * time.Hour,
	}
}

// MatchOption is a functional option for configuring matching
type MatchOption func(*MatchConfig)

// WithPoolSize sets the candidate pool size
func WithPoolSize(n int) MatchOption {
	return func(c *MatchConfig) {
		if n > 0 {
			c.PoolSize = n
		}
	}
}

// WithResultCap sets the maximum number of results
func WithResultCap(n int) MatchOption {
	return func(c *MatchConfig) {
		if n > 0 {
			c.ResultCap = n
		}
	}
}

// WithVectorCache enables or disables title vector caching
func WithVectorCache(enabled bool) MatchOption {
	return func(c *MatchConfig) {
		c.CacheVectors = enabled
	}
}

// WithoutVectorCache disables title vector caching
func WithoutVectorCache() MatchOption {
	return WithVectorCache(false)
}

// WithVectorTTL sets how long cached title vectors live
func WithVectorTTL(ttl time.Duration) MatchOption {
	return func(c *MatchConfig) {
		if ttl > 0 {
			c.VectorTTL = ttl
		}
	}
}

// NewMatchConfig creates a new match configuration with the given options
func NewMatchConfig(opts ...MatchOption) MatchConfig {
	config := DefaultMatchConfig()

	for _, opt := range opts {
		opt(&config)
	}

	return config
}

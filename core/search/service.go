// ABOUTME: Search service finds the courses most relevant to a free-text query
// ABOUTME: Provides business logic for course search operations independent of HTTP layer

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"coursefinder-api/core/domain"
	"coursefinder-api/core/errors"
	"coursefinder-api/core/interfaces"
)

// MaxQueryLength is the longest accepted query, in characters
const MaxQueryLength = 200

// SearchService handles course search operations
type SearchService struct {
	deps      interfaces.Dependencies
	corpus    interfaces.CorpusProvider
	ranker    interfaces.Ranker
	resultTTL time.Duration
}

// NewSearchService creates a new search service instance.
// Results are cached in deps.Cache for resultTTL when both are set.
func NewSearchService(deps interfaces.Dependencies, corpus interfaces.CorpusProvider, ranker interfaces.Ranker, resultTTL time.Duration) *SearchService {
	deps.Logger = interfaces.LoggerOrNop(deps.Logger)
	return &SearchService{
		deps:      deps,
		corpus:    corpus,
		ranker:    ranker,
		resultTTL: resultTTL,
	}
}

// validateQuery validates search query parameters
func (s *SearchService) validateQuery(query string) error {
	if query == "" {
		return &errors.ValidationError{Field: "q", Message: "search query cannot be empty"}
	}

	if utf8.RuneCountInString(query) > MaxQueryLength {
		return &errors.ValidationError{
			Field:   "q",
			Message: fmt.Sprintf("search query cannot exceed %d characters", MaxQueryLength),
		}
	}

	return nil
}

// Search returns the courses most relevant to query, best first.
// An empty corpus yields ErrNoCourses; a missing embedding capability yields
// ErrCapabilityUnavailable. No match is an empty slice with a nil error.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.RankedResult, error) {
	query = strings.TrimSpace(query)
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}

	if s.corpus == nil {
		return nil, errors.ErrNoCourses
	}
	corpus := s.corpus.GetCorpus(ctx)
	if corpus.IsEmpty() {
		s.deps.Logger.Warn("Search requested with no courses available", map[string]interface{}{
			"query": query,
		})
		return nil, errors.ErrNoCourses
	}

	// Check cache first
	cacheKey := resultCacheKey(corpus.Generation, query)
	if cached, ok := s.cachedResults(ctx, cacheKey); ok {
		return cached, nil
	}

	if s.ranker == nil {
		return nil, errors.ErrCapabilityUnavailable
	}

	results, err := s.ranker.Rank(ctx, query, corpus)
	if err != nil {
		if errors.IsUnavailable(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, "failed to rank courses")
	}
	if results == nil {
		results = []domain.RankedResult{}
	}

	s.deps.Logger.Info("Search completed", map[string]interface{}{
		"query":      query,
		"results":    len(results),
		"generation": corpus.Generation,
	})

	s.storeResults(ctx, cacheKey, results)
	return results, nil
}

// resultCacheKey scopes cached results to one corpus generation.
// The query keeps its case because remote embedders are case-sensitive.
func resultCacheKey(generation uint64, query string) string {
	return fmt.Sprintf("search:%d:%s", generation, query)
}

func (s *SearchService) cachedResults(ctx context.Context, key string) ([]domain.RankedResult, bool) {
	if s.deps.Cache == nil {
		return nil, false
	}
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}
	var results []domain.RankedResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (s *SearchService) storeResults(ctx context.Context, key string, results []domain.RankedResult) {
	if s.deps.Cache == nil || s.resultTTL <= 0 {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, s.resultTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache search results", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// ABOUTME: Semantic matcher ranks corpus titles against a query by cosine similarity
// ABOUTME: Widens to a candidate pool, deduplicates by title and caps the result list

package matcher

import (
	"context"
	"fmt"
	"math"
	"sort"

	"coursefinder-api/core/config"
	"coursefinder-api/core/domain"
	"coursefinder-api/core/errors"
	"coursefinder-api/core/interfaces"
)

// Matcher ranks course records by semantic similarity of their titles
type Matcher struct {
	embedder interfaces.Embedder
	vectors  *vectorCache
	logger   interfaces.Logger
	config   config.MatchConfig
}

// New creates a Matcher. A nil cache disables title vector reuse.
func New(embedder interfaces.Embedder, cache interfaces.Cache, logger interfaces.Logger, opts ...config.MatchOption) *Matcher {
	cfg := config.NewMatchConfig(opts...)
	m := &Matcher{
		embedder: embedder,
		logger:   interfaces.LoggerOrNop(logger),
		config:   cfg,
	}
	if cache != nil && cfg.CacheVectors {
		m.vectors = &vectorCache{cache: cache, ttl: cfg.VectorTTL, logger: m.logger}
	}
	return m
}

// Rank returns up to ResultCap records of corpus ordered by descending similarity
// to query, with at most one record per title.
func (m *Matcher) Rank(ctx context.Context, query string, corpus *domain.Corpus) ([]domain.RankedResult, error) {
	if corpus.IsEmpty() {
		return []domain.RankedResult{}, nil
	}

	if m.embedder == nil {
		m.logger.Error("Embedding model not initialized", map[string]interface{}{
			"query": query,
		})
		return []domain.RankedResult{}, errors.ErrCapabilityUnavailable
	}

	queryVec, titleVecs, err := m.embed(ctx, query, corpus.Titles())
	if err != nil {
		m.logger.Error("Failed to embed search query", map[string]interface{}{
			"query": query,
			"model": m.embedder.Model(),
			"error": err.Error(),
		})
		return []domain.RankedResult{}, errors.Unavailable(err)
	}

	scores := make([]float64, len(titleVecs))
	for i, v := range titleVecs {
		scores[i] = clamp(Cosine(queryVec, v))
	}

	return selectTop(corpus.Courses, scores, m.config.PoolSize, m.config.ResultCap), nil
}

// embed embeds the query and every title with the same model
func (m *Matcher) embed(ctx context.Context, query string, titles []string) ([]float32, [][]float32, error) {
	titleVecs := make([][]float32, len(titles))
	model := m.embedder.Model()

	// the query always goes first; titles are only embedded when not cached
	texts := []string{query}
	positions := make(map[string][]int)
	for i, title := range titles {
		if v, ok := m.vectors.get(ctx, model, title); ok {
			titleVecs[i] = v
			continue
		}
		if _, pending := positions[title]; !pending {
			texts = append(texts, title)
		}
		positions[title] = append(positions[title], i)
	}

	vectors, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, nil, err
	}
	if len(vectors) != len(texts) {
		return nil, nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	for j, title := range texts[1:] {
		v := vectors[j+1]
		for _, i := range positions[title] {
			titleVecs[i] = v
		}
		m.vectors.set(ctx, model, title, v)
	}

	return vectors[0], titleVecs, nil
}

// selectTop takes the poolSize best candidates, keeps the first record of each
// title until resultCap is reached and returns them sorted by descending score.
func selectTop(courses []domain.CourseRecord, scores []float64, poolSize, resultCap int) []domain.RankedResult {
	order := make([]int, len(courses))
	for i := range order {
		order[i] = i
	}
	// ties keep the lower corpus index first
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if len(order) > poolSize {
		order = order[:poolSize]
	}

	seen := make(map[string]struct{}, resultCap)
	results := make([]domain.RankedResult, 0, resultCap)
	for _, i := range order {
		title := courses[i].Title
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		results = append(results, domain.NewRankedResult(courses[i], scores[i]))
		if len(results) >= resultCap {
			break
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

// Cosine returns the cosine similarity of a and b, or 0 when either is a zero
// vector or their dimensions differ.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp(score float64) float64 {
	switch {
	case math.IsNaN(score), score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}

// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"coursefinder-api/core/domain"
)

// CorpusProvider supplies the current course corpus
type CorpusProvider interface {
	// GetCorpus returns a fully built corpus, rebuilding it when stale. Never nil.
	GetCorpus(ctx context.Context) *domain.Corpus

	// Current returns the corpus being served without rebuilding. Never nil.
	Current() *domain.Corpus

	// Refresh forces a rebuild and returns the published corpus.
	Refresh(ctx context.Context) (*domain.Corpus, error)

	// Statuses returns the per-platform outcome of the last rebuild.
	Statuses() []domain.PlatformStatus

	// Platforms returns the registered platform configurations.
	Platforms() []domain.PlatformConfig
}

// Ranker ranks corpus titles against a query
type Ranker interface {
	Rank(ctx context.Context, query string, corpus *domain.Corpus) ([]domain.RankedResult, error)
}

// SearchService is the single entry point used by presentation layers
type SearchService interface {
	Search(ctx context.Context, query string) ([]domain.RankedResult, error)
}

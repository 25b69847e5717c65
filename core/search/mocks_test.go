package search

import (
	"context"
	"time"

	"coursefinder-api/core/domain"
)

// mockCorpusProvider is a mock implementation of the CorpusProvider interface
type mockCorpusProvider struct {
	getCorpusFunc func(ctx context.Context) *domain.Corpus
	refreshFunc   func(ctx context.Context) (*domain.Corpus, error)
}

func (m *mockCorpusProvider) GetCorpus(ctx context.Context) *domain.Corpus {
	if m.getCorpusFunc != nil {
		return m.getCorpusFunc(ctx)
	}
	return domain.EmptyCorpus()
}

func (m *mockCorpusProvider) Refresh(ctx context.Context) (*domain.Corpus, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return domain.EmptyCorpus(), nil
}

func (m *mockCorpusProvider) Current() *domain.Corpus { return m.GetCorpus(context.Background()) }

func (m *mockCorpusProvider) Statuses() []domain.PlatformStatus  { return nil }
func (m *mockCorpusProvider) Platforms() []domain.PlatformConfig { return nil }

// mockRanker is a mock implementation of the Ranker interface
type mockRanker struct {
	rankFunc func(ctx context.Context, query string, corpus *domain.Corpus) ([]domain.RankedResult, error)
	calls    int
}

func (m *mockRanker) Rank(ctx context.Context, query string, corpus *domain.Corpus) ([]domain.RankedResult, error) {
	m.calls++
	if m.rankFunc != nil {
		return m.rankFunc(ctx, query, corpus)
	}
	return nil, nil
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

// mapCache is a map-backed cache for round-trip tests
type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

package handlers

import (
	"context"
	"sync/atomic"

	"coursefinder-api/core/domain"
)

// mockSearchService is a mock implementation of the SearchService interface
type mockSearchService struct {
	searchFunc func(ctx context.Context, query string) ([]domain.RankedResult, error)
}

func (m *mockSearchService) Search(ctx context.Context, query string) ([]domain.RankedResult, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, nil
}

// mockCorpusProvider is a mock implementation of the CorpusProvider interface
type mockCorpusProvider struct {
	corpus     *domain.Corpus
	refreshed  *domain.Corpus
	refreshErr error
	platforms  []domain.PlatformConfig
	statuses   []domain.PlatformStatus

	getCalls     atomic.Int32
	refreshCalls atomic.Int32
}

func (m *mockCorpusProvider) current() *domain.Corpus {
	if m.corpus == nil {
		return domain.EmptyCorpus()
	}
	return m.corpus
}

func (m *mockCorpusProvider) GetCorpus(ctx context.Context) *domain.Corpus {
	m.getCalls.Add(1)
	return m.current()
}

func (m *mockCorpusProvider) Current() *domain.Corpus {
	return m.current()
}

func (m *mockCorpusProvider) Refresh(ctx context.Context) (*domain.Corpus, error) {
	m.refreshCalls.Add(1)
	if m.refreshErr != nil {
		return m.current(), m.refreshErr
	}
	if m.refreshed != nil {
		return m.refreshed, nil
	}
	return m.current(), nil
}

func (m *mockCorpusProvider) Statuses() []domain.PlatformStatus  { return m.statuses }
func (m *mockCorpusProvider) Platforms() []domain.PlatformConfig { return m.platforms }

// mockTrigger is a mock implementation of the RefreshTrigger interface
type mockTrigger struct {
	err   error
	calls int
}

func (m *mockTrigger) Trigger() error {
	m.calls++
	return m.err
}

package scraper

import (
	"context"

	"coursefinder-api/core/domain"
)

type mockFetcher struct {
	fetchFunc func(ctx context.Context, url string) (string, error)
	calls     []string
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	m.calls = append(m.calls, url)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return "", nil
}

type mockExtractor struct {
	extractFunc func(rawHTML string, platform domain.PlatformConfig) ([]domain.CourseRecord, error)
}

func (m *mockExtractor) ExtractHTML(rawHTML string, platform domain.PlatformConfig) ([]domain.CourseRecord, error) {
	if m.extractFunc != nil {
		return m.extractFunc(rawHTML, platform)
	}
	return nil, nil
}

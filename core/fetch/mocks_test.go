package fetch

import (
	"context"

	"coursefinder-api/core/interfaces"
)

// mockBrowser is a mock implementation of the Browser interface
type mockBrowser struct {
	openFunc func(ctx context.Context) (interfaces.Session, error)
}

func (m *mockBrowser) Open(ctx context.Context) (interfaces.Session, error) {
	return m.openFunc(ctx)
}

// mockSession is a mock implementation of the Session interface
type mockSession struct {
	loadFunc   func(ctx context.Context, url string) error
	scrollFunc func(ctx context.Context) error
	heightFunc func(ctx context.Context) (int, error)
	html       string

	loads   int
	scrolls int
	closed  int
}

func (m *mockSession) Load(ctx context.Context, url string) error {
	m.loads++
	if m.loadFunc != nil {
		return m.loadFunc(ctx, url)
	}
	return nil
}

func (m *mockSession) ScrollToEnd(ctx context.Context) error {
	m.scrolls++
	if m.scrollFunc != nil {
		return m.scrollFunc(ctx)
	}
	return nil
}

func (m *mockSession) ContentHeight(ctx context.Context) (int, error) {
	if m.heightFunc != nil {
		return m.heightFunc(ctx)
	}
	return 1000, nil
}

func (m *mockSession) HTML(ctx context.Context) (string, error) {
	return m.html, nil
}

func (m *mockSession) Close() error {
	m.closed++
	return nil
}

func browserFor(s *mockSession) *mockBrowser {
	return &mockBrowser{openFunc: func(context.Context) (interfaces.Session, error) {
		return s, nil
	}}
}

func fastOptions() Options {
	return Options{MaxRetries: 3, ScrollRounds: 5, ScrollAttempts: 10}
}

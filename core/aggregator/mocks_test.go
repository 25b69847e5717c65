package aggregator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"coursefinder-api/core/domain"
	"coursefinder-api/core/interfaces"
	"coursefinder-api/core/scraper"
)

type fakeSource struct {
	name    string
	records []domain.CourseRecord
	err     string
	delay   time.Duration
	runFunc func(ctx context.Context) scraper.Result
	calls   atomic.Int32
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Platform() domain.PlatformConfig {
	return domain.PlatformConfig{Name: f.name, ListingURL: "https://" + f.name + ".test/courses"}
}

func (f *fakeSource) Run(ctx context.Context) scraper.Result {
	f.calls.Add(1)
	if f.runFunc != nil {
		return f.runFunc(ctx)
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	records := make([]domain.CourseRecord, len(f.records))
	copy(records, f.records)
	return scraper.Result{
		Records: records,
		Status:  domain.PlatformStatus{Platform: f.name, Count: len(records), Error: f.err},
	}
}

func course(title, platform string) domain.CourseRecord {
	return domain.CourseRecord{
		Title:      title,
		CourseLink: "https://" + platform + ".test/" + title,
		Platform:   platform,
	}
}

// fakeClock is a manually advanced time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// failingBrowser opens sessions whose every load fails
type failingBrowser struct {
	loads atomic.Int32
}

func (b *failingBrowser) Open(ctx context.Context) (interfaces.Session, error) {
	return &failingSession{browser: b}, nil
}

type failingSession struct {
	browser *failingBrowser
}

func (s *failingSession) Load(ctx context.Context, url string) error {
	s.browser.loads.Add(1)
	return errors.New("connection reset")
}

func (s *failingSession) ScrollToEnd(ctx context.Context) error          { return nil }
func (s *failingSession) ContentHeight(ctx context.Context) (int, error) { return 0, nil }
func (s *failingSession) HTML(ctx context.Context) (string, error)       { return "", nil }
func (s *failingSession) Close() error                                   { return nil }

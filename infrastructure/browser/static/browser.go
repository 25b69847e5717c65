// ABOUTME: Static browser backend that fetches listing pages with colly
// ABOUTME: Serves platforms whose course cards are present without running client-side script

package static

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coursefinder-api/core/interfaces"
	"github.com/gocolly/colly"
)

const (
	userAgent   = "Mozilla/5.0 (compatible; CourseFinder/1.0)"
	maxBodySize = 10 * 1024 * 1024
)

// ErrNotLoaded is returned when a session is read before a page was loaded
var ErrNotLoaded = errors.New("no page loaded")

// Browser opens colly-backed sessions
type Browser struct {
	timeout time.Duration
}

// New creates a static browser with the given request timeout
func New(timeout time.Duration) *Browser {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Browser{timeout: timeout}
}

// Open returns a new session
func (b *Browser) Open(ctx context.Context) (interfaces.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &session{timeout: b.timeout}, nil
}

type session struct {
	timeout time.Duration
	body    string
	loaded  bool
}

// Load fetches url with a fresh collector
func (s *session) Load(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxBodySize(maxBodySize),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(s.timeout)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := c.Visit(url); err != nil {
		return fmt.Errorf("visiting %s: %w", url, err)
	}
	if body == nil {
		return fmt.Errorf("visiting %s: empty response", url)
	}

	s.body = string(body)
	s.loaded = true
	return nil
}

// ScrollToEnd is a no-op; static documents never grow
func (s *session) ScrollToEnd(ctx context.Context) error {
	return ctx.Err()
}

// ContentHeight reports a constant height for the loaded document
func (s *session) ContentHeight(ctx context.Context) (int, error) {
	if !s.loaded {
		return 0, ErrNotLoaded
	}
	return len(s.body), nil
}

// HTML returns the fetched document
func (s *session) HTML(ctx context.Context) (string, error) {
	if !s.loaded {
		return "", ErrNotLoaded
	}
	return s.body, nil
}

// Close releases the session
func (s *session) Close() error {
	s.body = ""
	s.loaded = false
	return nil
}

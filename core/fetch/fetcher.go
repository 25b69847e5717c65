// ABOUTME: Page fetcher loads a listing page with retries and scrolls it to pull in lazy content
// ABOUTME: Guarantees the browser session is released on every exit path

package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coursefinder-api/core/interfaces"
	"coursefinder-api/pkg/retry"
)

// ErrUnavailable is returned when a page could not be acquired
var ErrUnavailable = errors.New("page unavailable")

// stagnantLimit is the number of consecutive scrolls without growth that ends a round
const stagnantLimit = 3

// Options configures the fetch policy
type Options struct {
	// MaxRetries is the number of load attempts
	MaxRetries int

	// RetryDelay is the fixed wait between load attempts
	RetryDelay time.Duration

	// ScrollRounds is the number of outer scroll rounds
	ScrollRounds int

	// ScrollAttempts is the maximum number of scrolls within a round
	ScrollAttempts int

	// ScrollDelay is the wait after each scroll and between rounds
	ScrollDelay time.Duration
}

// DefaultOptions returns the default fetch policy
func DefaultOptions() Options {
	return Options{
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		ScrollRounds:   5,
		ScrollAttempts: 10,
		ScrollDelay:    2 * time.Second,
	}
}

// Fetcher acquires fully rendered HTML documents
type Fetcher struct {
	browser interfaces.Browser
	logger  interfaces.Logger
	opts    Options
}

// NewFetcher creates a fetcher over the given browser
func NewFetcher(browser interfaces.Browser, logger interfaces.Logger, opts Options) *Fetcher {
	defaults := DefaultOptions()
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaults.MaxRetries
	}
	if opts.ScrollRounds < 0 {
		opts.ScrollRounds = 0
	}
	if opts.ScrollAttempts <= 0 {
		opts.ScrollAttempts = defaults.ScrollAttempts
	}
	return &Fetcher{
		browser: browser,
		logger:  interfaces.LoggerOrNop(logger),
		opts:    opts,
	}
}

// Fetch returns the rendered HTML of url. Any failure is reported as an error
// wrapping ErrUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	if f.browser == nil {
		return "", fmt.Errorf("%w: no browser configured", ErrUnavailable)
	}

	session, err := f.browser.Open(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: open session: %v", ErrUnavailable, err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			f.logger.Warn("Failed to close browser session", map[string]interface{}{
				"url":   url,
				"error": cerr.Error(),
			})
		}
	}()

	policy := retry.Policy{MaxAttempts: f.opts.MaxRetries, Delay: f.opts.RetryDelay}
	err = retry.Do(ctx, policy, func(ctx context.Context) error {
		return session.Load(ctx, url)
	}, func(attempt int, err error) {
		f.logger.Error("Error loading URL", map[string]interface{}{
			"url":          url,
			"attempt":      attempt,
			"max_attempts": f.opts.MaxRetries,
			"error":        err.Error(),
		})
	})
	if err != nil {
		return "", fmt.Errorf("%w: load %s: %v", ErrUnavailable, url, err)
	}

	f.scroll(ctx, session, url)

	html, err = session.HTML(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: read document: %v", ErrUnavailable, err)
	}
	return html, nil
}

// scroll triggers lazy loading. Every round runs, since content can arrive
// after a quiet round. Errors end the sequence but keep the document.
func (f *Fetcher) scroll(ctx context.Context, session interfaces.Session, url string) {
	for round := 0; round < f.opts.ScrollRounds; round++ {
		grew, err := f.scrollRound(ctx, session)
		if err != nil {
			f.logger.Error("Error while scrolling", map[string]interface{}{
				"url":   url,
				"round": round + 1,
				"error": err.Error(),
			})
			return
		}
		if !grew {
			f.logger.Debug("No new content this round", map[string]interface{}{
				"url":   url,
				"round": round + 1,
			})
		}
		if err := retry.Sleep(ctx, f.opts.ScrollDelay); err != nil {
			return
		}
	}
}

// scrollRound scrolls until the height stops growing for stagnantLimit
// consecutive attempts or ScrollAttempts is reached. It reports whether the
// document grew at all during the round.
func (f *Fetcher) scrollRound(ctx context.Context, session interfaces.Session) (bool, error) {
	last, err := session.ContentHeight(ctx)
	if err != nil {
		return false, err
	}

	grew := false
	stagnant := 0
	for attempt := 0; attempt < f.opts.ScrollAttempts; attempt++ {
		if err := session.ScrollToEnd(ctx); err != nil {
			return grew, err
		}
		if err := retry.Sleep(ctx, f.opts.ScrollDelay); err != nil {
			return grew, err
		}
		height, err := session.ContentHeight(ctx)
		if err != nil {
			return grew, err
		}
		if height == last {
			stagnant++
		} else {
			stagnant = 0
			grew = true
		}
		last = height
		if stagnant >= stagnantLimit {
			break
		}
	}
	return grew, nil
}

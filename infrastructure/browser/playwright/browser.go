// ABOUTME: Headless Chromium browser backend driven by playwright-go
// ABOUTME: Executes client-side script so infinitely scrolling listings render their cards

package playwright

import (
	"context"
	"fmt"
	"sync"

	"coursefinder-api/core/interfaces"
	pw "github.com/playwright-community/playwright-go"
)

const (
	scrollScript = "() => window.scrollTo(0, document.body.scrollHeight)"
	heightScript = "() => document.body.scrollHeight"
)

// Options configures the browser
type Options struct {
	// ExecutablePath points at a system Chromium; empty uses the Playwright-managed one
	ExecutablePath string

	// InstallDriver downloads the Playwright driver on first use
	InstallDriver bool

	// NavigationTimeout bounds each page load, in milliseconds
	NavigationTimeout float64

	UserAgent string
}

// Browser launches Chromium once and opens an isolated context per session
type Browser struct {
	opts   Options
	logger interfaces.Logger

	mu      sync.Mutex
	pw      *pw.Playwright
	browser pw.Browser
}

// New creates a browser; Chromium is started lazily on the first Open
func New(opts Options, logger interfaces.Logger) *Browser {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = 30000
	}
	return &Browser{opts: opts, logger: interfaces.LoggerOrNop(logger)}
}

// Open starts a new isolated page
func (b *Browser) Open(ctx context.Context) (interfaces.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := b.launch()
	if err != nil {
		return nil, err
	}

	contextOpts := pw.BrowserNewContextOptions{}
	if b.opts.UserAgent != "" {
		contextOpts.UserAgent = pw.String(b.opts.UserAgent)
	}
	bctx, err := browser.NewContext(contextOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultNavigationTimeout(b.opts.NavigationTimeout)

	return &session{bctx: bctx, page: page}, nil
}

// launch starts Playwright and Chromium if they are not running
func (b *Browser) launch() (pw.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil && b.browser.IsConnected() {
		return b.browser, nil
	}

	if b.pw == nil {
		if b.opts.InstallDriver {
			if err := pw.Install(&pw.RunOptions{SkipInstallBrowsers: b.opts.ExecutablePath != ""}); err != nil {
				b.logger.Warn("Playwright driver installation warning", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
		instance, err := pw.Run()
		if err != nil {
			return nil, fmt.Errorf("failed to start Playwright: %w", err)
		}
		b.pw = instance
	}

	launchOpts := pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(true),
		Args:     []string{"--no-sandbox", "--disable-dev-shm-usage", "--disable-gpu"},
	}
	if b.opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = pw.String(b.opts.ExecutablePath)
	}

	browser, err := b.pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	b.browser = browser

	b.logger.Info("Launched headless Chromium", map[string]interface{}{
		"version": browser.Version(),
	})
	return browser, nil
}

// Close shuts down Chromium and the Playwright driver
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var firstErr error
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			firstErr = err
		}
		b.browser = nil
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		b.pw = nil
	}
	return firstErr
}

type session struct {
	bctx pw.BrowserContext
	page pw.Page
}

func (s *session) Load(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	resp, err := s.page.Goto(url, pw.PageGotoOptions{
		WaitUntil: pw.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	if resp != nil && resp.Status() >= 400 {
		return fmt.Errorf("failed to navigate: status %d", resp.Status())
	}
	return nil
}

func (s *session) ScrollToEnd(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.Evaluate(scrollScript)
	return err
}

func (s *session) ContentHeight(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v, err := s.page.Evaluate(heightScript)
	if err != nil {
		return 0, err
	}
	return toInt(v)
}

func (s *session) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.page.Content()
}

// Close closes the page and its browser context
func (s *session) Close() error {
	pageErr := s.page.Close()
	if err := s.bctx.Close(); err != nil {
		return err
	}
	return pageErr
}

// toInt converts a value returned from page script into an int
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected height type %T", v)
	}
}

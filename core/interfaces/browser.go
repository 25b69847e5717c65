// ABOUTME: Browser interfaces for acquiring rendered listing pages
// ABOUTME: Sessions wrap a browser tab or HTTP visit and must always be closed

package interfaces

import "context"

// Browser opens page sessions. Implementations may drive a headless browser
// that executes client-side script, or fetch static HTML.
type Browser interface {
	// Open acquires a new session. The caller must Close it on every exit path.
	Open(ctx context.Context) (Session, error)
}

// Session is a single page acquired from a Browser
type Session interface {
	// Load navigates to url and waits for the document to be available.
	Load(ctx context.Context, url string) error

	// ScrollToEnd asks the page to load more content by scrolling to its end.
	ScrollToEnd(ctx context.Context) error

	// ContentHeight returns the current scrollable height of the document.
	ContentHeight(ctx context.Context) (int, error)

	// HTML returns the current rendered document.
	HTML(ctx context.Context) (string, error)

	// Close releases the session and any underlying browser resources.
	Close() error
}

// ABOUTME: Refresh worker keeps the course corpus warm in the background
// ABOUTME: Builds the corpus at startup and rebuilds it periodically ahead of cache expiry

package workers

import (
	"context"
	"sync"
	"time"

	"coursefinder-api/core/domain"
	"coursefinder-api/core/interfaces"
)

// Refresher rebuilds the course corpus
type Refresher interface {
	Refresh(ctx context.Context) (*domain.Corpus, error)
}

// WorkerConfig holds configuration for the refresh worker
type WorkerConfig struct {
	// Interval between scheduled refreshes; zero disables the schedule
	Interval time.Duration

	// WarmUp refreshes once as soon as the worker starts
	WarmUp bool
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Interval: 50 * time.Minute,
		WarmUp:   true,
	}
}

// RefreshWorker runs corpus refreshes on a schedule and on demand
type RefreshWorker struct {
	refresher Refresher
	logger    interfaces.Logger
	config    WorkerConfig
	triggerCh chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.Mutex
	running   bool
}

// NewRefreshWorker creates a new refresh worker
func NewRefreshWorker(refresher Refresher, logger interfaces.Logger, config WorkerConfig) *RefreshWorker {
	if config.Interval < 0 {
		config.Interval = 0
	}
	return &RefreshWorker{
		refresher: refresher,
		logger:    interfaces.LoggerOrNop(logger),
		config:    config,
		triggerCh: make(chan struct{}, 1),
	}
}

// Start starts the background loop. Starting a running worker is a no-op.
func (rw *RefreshWorker) Start() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.running {
		return nil
	}
	if rw.refresher == nil {
		return ErrNoRefresher
	}

	rw.ctx, rw.cancel = context.WithCancel(context.Background())
	rw.wg.Add(1)
	go rw.run(rw.ctx)

	rw.running = true
	return nil
}

// Stop stops the loop and waits for an in-flight refresh to finish.
// Stopping a stopped worker is a no-op.
func (rw *RefreshWorker) Stop() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if !rw.running {
		return nil
	}

	rw.cancel()
	rw.wg.Wait()

	rw.running = false
	return nil
}

// Running reports whether the loop is active
func (rw *RefreshWorker) Running() bool {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.running
}

// Trigger requests an immediate refresh without waiting for it.
// Requests made while one is already pending are coalesced.
func (rw *RefreshWorker) Trigger() error {
	rw.mu.Lock()
	running := rw.running
	rw.mu.Unlock()
	if !running {
		return ErrWorkerNotRunning
	}

	select {
	case rw.triggerCh <- struct{}{}:
		return nil
	default:
		return ErrRefreshPending
	}
}

// run is the main loop
func (rw *RefreshWorker) run(ctx context.Context) {
	defer rw.wg.Done()

	if rw.config.WarmUp {
		rw.refresh(ctx, "warm-up")
	}

	var tick <-chan time.Time
	if rw.config.Interval > 0 {
		ticker := time.NewTicker(rw.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			rw.refresh(ctx, "schedule")
		case <-rw.triggerCh:
			rw.refresh(ctx, "trigger")
		}
	}
}

// refresh runs one rebuild; failures are logged and the loop continues
func (rw *RefreshWorker) refresh(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	corpus, err := rw.refresher.Refresh(ctx)
	if err != nil {
		rw.logger.Warn("Corpus refresh failed", map[string]interface{}{
			"reason": reason,
			"error":  err.Error(),
		})
		return
	}

	rw.logger.Info("Corpus refreshed", map[string]interface{}{
		"reason":     reason,
		"courses":    corpus.Len(),
		"generation": corpus.Generation,
		"duration":   time.Since(start).String(),
	})
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "refresh worker is not running"}
	ErrRefreshPending   = &WorkerError{Message: "a refresh is already pending"}
	ErrNoRefresher      = &WorkerError{Message: "refresh worker has no refresher"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}

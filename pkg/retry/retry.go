// Package retry runs an operation a bounded number of times with a fixed
// delay between attempts.
package retry

import (
	"context"
	"time"
)

// Policy configures retry behavior.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// Default mirrors the fetch policy: 3 attempts, 2s apart.
var Default = Policy{
	MaxAttempts: 3,
	Delay:       2 * time.Second,
}

// OnError is called after every failed attempt. attempt is 1-based.
type OnError func(attempt int, err error)

// Do calls f until it succeeds or MaxAttempts is reached. It returns the last
// error, or ctx.Err() if the context ends while waiting.
func Do(ctx context.Context, p Policy, f func(context.Context) error, onErr OnError) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = f(ctx); err == nil {
			return nil
		}
		if onErr != nil {
			onErr(attempt, err)
		}
		if attempt == attempts {
			break
		}
		if werr := Sleep(ctx, p.Delay); werr != nil {
			return werr
		}
	}
	return err
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

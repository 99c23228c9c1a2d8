// Package retry re-runs a unit of work with exponential backoff while the
// failure is classified as transient (serialization failure, deadlock, busy
// database).
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

const (
	defaultMaxAttempts  = 5
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

// ErrExhausted wraps the last transient error once all attempts are used.
var ErrExhausted = errors.New("retry attempts exhausted")

// Func is a unit of work that can be retried.
type Func func(ctx context.Context) error

type config struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
	retryable    func(error) bool
}

// Option configures Do.
type Option func(*config)

// WithMaxAttempts sets the total number of attempts, including the first one.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the delay before the second attempt; later delays double.
func WithBaseDelay(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.baseDelay = d
		}
	}
}

// If sets the classifier deciding which errors are transient.
func If(retryable func(error) bool) Option {
	return func(c *config) {
		c.retryable = retryable
	}
}

// Do runs fn until it succeeds, fails permanently, the context ends, or the
// attempts run out. In the last case the returned error wraps both
// ErrExhausted and the last failure.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	cfg := config{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
		retryable:    func(error) bool { return false },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var lastErr error
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := cfg.baseDelay * time.Duration(1<<(attempt-1))
			jitter := rand.Float64() * float64(delay) * cfg.jitterFactor //nolint:gosec // jitter only
			select {
			case <-time.After(delay + time.Duration(jitter)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !cfg.retryable(lastErr) {
			return lastErr
		}
	}

	return errors.Join(ErrExhausted, lastErr)
}

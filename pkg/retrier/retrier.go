// Package retrier retries failed operations with exponential backoff.
package retrier

import (
	"context"
	"math/rand"
	"time"
)

// Retrier runs an operation up to a fixed number of attempts, doubling the
// delay between attempts with a little jitter.
type Retrier struct {
	attempts int
	base     time.Duration
	max      time.Duration
}

// New creates a retrier with the given attempt budget. attempts below one
// are clamped to one.
func New(attempts int, base, max time.Duration) *Retrier {
	if attempts < 1 {
		attempts = 1
	}
	if max < base {
		max = base
	}
	return &Retrier{attempts: attempts, base: base, max: max}
}

// Do runs fn until it succeeds, the attempt budget is spent or ctx is done.
// The last error is returned when all attempts fail.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	delay := r.base
	var err error

	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.Int63n(int64(delay)/5 + 1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay + jitter):
			}

			delay *= 2
			if delay > r.max {
				delay = r.max
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
	}

	return err
}

// DoWithData runs fn with retries and returns its value.
func DoWithData[T any](r *Retrier, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := r.Do(ctx, func(ctx context.Context) error {
		var ferr error
		out, ferr = fn(ctx)
		return ferr
	})
	return out, err
}

package fetcher

import (
	"context"
	"time"

	"go.trai.ch/pkgcore/internal/core/domain"
)

// retry calls fn up to attempts times, doubling delay after each retryable failure.
// Errors that are not domain.RetryableError are returned immediately.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !domain.IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
				delay *= 2
			}
		}
	}
	return lastErr
}

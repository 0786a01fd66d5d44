package cache

import (
	"context"
	"errors"
	"time"
)

// DefaultRetryDelay is the wait before the first retry; it doubles after
// each further failed attempt.
const DefaultRetryDelay = 500 * time.Millisecond

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry calls fn once, then up to retries more times while it fails with a
// [RetryableError]. The wait starts at delay and doubles after each attempt.
// Other errors are returned immediately; a cancelled ctx returns ctx.Err().
func Retry(ctx context.Context, retries int, delay time.Duration, fn func() error) error {
	attempts := max(retries, 0) + 1
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

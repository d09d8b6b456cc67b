package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a failed round trip to a remote backend.
var ErrNetwork = errors.New("network error")

// RetryableError marks an error worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err so that [Backoff.Do] retries it. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff is a retry policy: up to Attempts calls, sleeping Delay after the
// first failure and doubling up to MaxDelay after each further one.
type Backoff struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration
}

// DefaultBackoff suits a cache lookup that sits in front of a render: a few
// quick retries, then fall through to rendering.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 50 * time.Millisecond, MaxDelay: 500 * time.Millisecond}

// Do calls fn until it succeeds, returns an error not marked [Retryable], or
// runs out of attempts. The last error is returned.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if delay *= 2; b.MaxDelay > 0 && delay > b.MaxDelay {
			delay = b.MaxDelay
		}
	}
	return err
}

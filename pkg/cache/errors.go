package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss marks a key the backend does not hold. Backends turn it
	// into a (nil, false, nil) result before it reaches the runner.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNetwork marks a failed round trip to a shared backend.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrClosed is returned once the backend has been closed.
	ErrClosed = errors.New("cache closed")
)

// RetryableError marks a backend failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err so that a Backoff retries it. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// classify maps a go-redis error onto the cache sentinels. A missing key
// becomes ErrCacheMiss, a closed client ErrClosed, and cancellation passes
// through untouched. Anything else is a retryable ErrNetwork.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case errors.Is(err, redis.ErrClosed):
		return ErrClosed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return Retryable(errors.Join(ErrNetwork, err))
	}
}

// Backoff retries retryable cache operations with a doubling delay.
type Backoff struct {
	// Attempts is the total number of calls, including the first.
	Attempts int
	// Delay is the wait before the second attempt.
	Delay time.Duration
}

// DefaultBackoff suits a Redis instance on the local network: a layout is
// cheap to recompute, so the runner gives up quickly and treats the failure
// as a miss.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 50 * time.Millisecond}

func (b Backoff) withDefaults() Backoff {
	if b.Attempts <= 0 {
		b.Attempts = DefaultBackoff.Attempts
	}
	if b.Delay <= 0 {
		b.Delay = DefaultBackoff.Delay
	}
	return b
}

// Do calls fn until it succeeds, returns a non-retryable error, the attempts
// run out, or ctx is done.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	b = b.withDefaults()
	delay := b.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt == b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

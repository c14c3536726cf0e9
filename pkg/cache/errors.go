package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable reports that a remote cache backend could not be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// TransientError marks a backend failure worth retrying, such as a dropped
// Redis connection.
type TransientError struct{ Err error }

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a [TransientError]. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err carries a [TransientError].
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// Backoff retries transient backend failures with doubling delays.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff suits a local or same-region Redis: three attempts, 50ms
// then 100ms apart.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 50 * time.Millisecond}

// Retry calls fn until it succeeds, returns a non-transient error, the
// attempts run out, or ctx is done.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// Package retry re-runs operations that lost an optimistic race.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds how often and how fast a conflicting operation is retried.
type Policy struct {
	MaxAttempts int
	Initial     time.Duration
	Max         time.Duration
}

// DefaultPolicy returns a short jittered exponential policy with n attempts.
func DefaultPolicy(n int) Policy {
	return Policy{MaxAttempts: n, Initial: 5 * time.Millisecond, Max: 200 * time.Millisecond}
}

// OnConflict runs fn until it succeeds, fails with an error that does not
// match any of retryable, or MaxAttempts is reached. onRetry (optional) is
// called before every retry with the attempt number that failed.
func OnConflict(
	ctx context.Context,
	p Policy,
	fn func(ctx context.Context) error,
	onRetry func(attempt int, err error),
	retryable ...error,
) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.Initial
	eb.MaxInterval = p.Max
	eb.MaxElapsedTime = 0

	var b backoff.BackOff = backoff.WithMaxRetries(eb, uint64(p.MaxAttempts-1))
	b = backoff.WithContext(b, ctx)

	attempt := 0
	op := func() error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		for _, target := range retryable {
			if errors.Is(err, target) {
				return err
			}
		}
		return backoff.Permanent(err)
	}

	notify := func(err error, _ time.Duration) {
		if onRetry != nil {
			onRetry(attempt, err)
		}
	}

	return backoff.RetryNotify(op, b, notify)
}

// Package retry runs fallible store operations under a fixed-delay retry policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/docstore"
	"github.com/wahinekai/memberdb-backend/internal/domain"
)

const (
	DefaultMaxRetries = 10
	DefaultDelay      = 1 * time.Second
)

// Policy controls how many times an operation is retried and which errors qualify
type Policy struct {
	MaxRetries int           // Retries after the first attempt
	Delay      time.Duration // Fixed wait between attempts
	Retryable  func(error) bool
}

// DefaultPolicy retries transient store failures ten times, one second apart
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		Delay:      DefaultDelay,
		Retryable:  docstore.IsTransient,
	}
}

// Do runs op until it succeeds, fails with a non-retryable error, or runs out
// of retries. Non-retryable errors, and domain business errors under any
// policy, are returned unchanged. Exhaustion returns
// an error matching both domain.ErrStoreUnavailable and the last failure.
// Cancellation of ctx stops the loop with an error matching domain.ErrCancelled.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	retryable := p.Retryable
	if retryable == nil {
		retryable = docstore.IsTransient
	}

	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Int("max_retries", p.MaxRetries).
				Dur("delay", p.Delay).
				Msg("Retrying store operation")
			if err := wait(ctx, p.Delay); err != nil {
				return zero, err
			}
		} else if err := ctx.Err(); err != nil {
			return zero, cancelled(err)
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, cancelled(ctxErr)
		}
		if isContextErr(err) {
			return zero, cancelled(err)
		}
		// business errors are final even when they wrap a transient cause
		if domain.IsBusinessError(err) || !retryable(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", domain.ErrStoreUnavailable, p.MaxRetries+1, lastErr)
}

// Run is Do for operations without a result
func Run(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return cancelled(err)
		}
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return cancelled(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func cancelled(err error) error {
	if errors.Is(err, domain.ErrCancelled) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrCancelled, err)
}

// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package backoff provides exponential backoff with jitter for retrying operations.
package backoff

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Policy configures Retry.
type Policy struct {
	// MaxAttempts is the maximum number of calls, including the first. Must be at least 1.
	MaxAttempts int
	// InitialDelay is the upper bound of the wait before the second attempt.
	InitialDelay time.Duration
	// MaxDelay caps the wait between attempts.
	MaxDelay time.Duration
}

// Validate returns an error if the Policy cannot be used.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", p.MaxAttempts)
	}
	if p.InitialDelay < 0 || p.MaxDelay < 0 {
		return errors.New("delays must not be negative")
	}
	if p.MaxDelay < p.InitialDelay {
		return fmt.Errorf("max delay %v is less than initial delay %v", p.MaxDelay, p.InitialDelay)
	}
	return nil
}

// Retry calls f repeatedly until it succeeds, returns a non-retryable error,
// or policy.MaxAttempts is reached. Between attempts, it waits with
// exponential backoff and jitter.
//
// f returns the result, whether the error is retryable, and any error.
// If retryable is true and err is non-nil, Retry will wait and try again.
// If retryable is false, Retry returns immediately with the error.
func Retry[T any](
	ctx context.Context,
	policy Policy,
	f func(ctx context.Context, attempt int) (T, bool, error),
) (T, error) {
	var zero T
	if err := policy.Validate(); err != nil {
		return zero, err
	}
	delay := policy.InitialDelay
	for attempt := range policy.MaxAttempts {
		result, retryable, err := f(ctx, attempt)
		if err == nil {
			return result, nil
		}
		if !retryable {
			return zero, err
		}
		// Don't wait after the last attempt.
		if attempt == policy.MaxAttempts-1 {
			return zero, fmt.Errorf("failed after %d attempts: %w", policy.MaxAttempts, err)
		}
		if err := sleep(ctx, jitter(delay)); err != nil {
			return zero, err
		}
		// Exponential backoff, capped at MaxDelay.
		delay = min(delay*2, policy.MaxDelay)
	}
	return zero, fmt.Errorf("failed after %d attempts", policy.MaxAttempts)
}

// *** PRIVATE ***

// jitter returns a random duration between delay/2 and delay.
func jitter(delay time.Duration) time.Duration {
	return delay/2 + time.Duration(rand.Int64N(int64(delay/2+1)))
}

func sleep(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Copyright 2026 Peter Edge
//
// All rights reserved.

package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testPolicy = Policy{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     2 * time.Millisecond,
}

func TestRetrySucceeds(t *testing.T) {
	t.Parallel()
	var attempts []int
	result, err := Retry(
		context.Background(),
		testPolicy,
		func(_ context.Context, attempt int) (string, bool, error) {
			attempts = append(attempts, attempt)
			if attempt < 2 {
				return "", true, errors.New("not ready")
			}
			return "done", false, nil
		},
	)
	require.NoError(t, err)
	require.Equal(t, "done", result)
	require.Equal(t, []int{0, 1, 2}, attempts)
}

func TestRetryNonRetryable(t *testing.T) {
	t.Parallel()
	permanentErr := errors.New("permanent")
	calls := 0
	_, err := Retry(
		context.Background(),
		testPolicy,
		func(context.Context, int) (int, bool, error) {
			calls++
			return 1, false, permanentErr
		},
	)
	require.ErrorIs(t, err, permanentErr)
	require.Equal(t, 1, calls)
}

func TestRetryExhausted(t *testing.T) {
	t.Parallel()
	retryableErr := errors.New("retryable")
	calls := 0
	_, err := Retry(
		context.Background(),
		testPolicy,
		func(context.Context, int) (int, bool, error) {
			calls++
			return 0, true, retryableErr
		},
	)
	require.ErrorIs(t, err, retryableErr)
	require.ErrorContains(t, err, "failed after 3 attempts")
	require.Equal(t, 3, calls)
}

func TestRetryContextCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(
		ctx,
		Policy{MaxAttempts: 5, InitialDelay: time.Hour, MaxDelay: time.Hour},
		func(context.Context, int) (int, bool, error) {
			calls++
			cancel()
			return 0, true, errors.New("retryable")
		},
	)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestPolicyValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, testPolicy.Validate())
	require.Error(t, Policy{}.Validate())
	require.Error(t, Policy{MaxAttempts: 1, InitialDelay: -time.Second}.Validate())
	require.Error(t, Policy{MaxAttempts: 1, InitialDelay: time.Second, MaxDelay: time.Millisecond}.Validate())
	_, err := Retry(
		context.Background(),
		Policy{},
		func(context.Context, int) (int, bool, error) {
			return 0, false, nil
		},
	)
	require.Error(t, err)
}

func TestJitter(t *testing.T) {
	t.Parallel()
	for range 100 {
		delay := jitter(time.Second)
		require.GreaterOrEqual(t, delay, 500*time.Millisecond)
		require.LessOrEqual(t, delay, time.Second)
	}
	require.Zero(t, jitter(0))
}

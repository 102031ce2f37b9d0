/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"context"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
)

// RetryOptions configures RetryWithBackoff.
type RetryOptions struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// BaseDelay is the wait before the first retry, doubled for each one after.
	BaseDelay time.Duration
	// Timer is used to wait between attempts, nil uses a real timer.
	Timer backoff.Timer
}

// DefaultRetryOptions returns three retries starting at one second.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
	}
}

// newBackOff produces exactly BaseDelay * 2^attempt with no jitter and no
// elapsed time ceiling, only the retry count stops it.
func newBackOff(ctx context.Context, options RetryOptions) backoff.BackOff {
	policy := &backoff.ExponentialBackOff{
		InitialInterval:     options.BaseDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         time.Duration(math.MaxInt64),
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}

	policy.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(max(options.MaxRetries, 0))), ctx)
}

// RetryWithBackoff invokes operation until it succeeds, making at most
// MaxRetries+1 attempts. Attempts are strictly sequential. Once retries are
// exhausted the error from the final attempt is returned unchanged.
func RetryWithBackoff[T any](ctx context.Context, operation func(ctx context.Context) (T, error), options RetryOptions) (T, error) {
	var (
		result  T
		attempt int
	)

	op := func() error {
		attempt++

		value, err := operation(ctx)
		if err != nil {
			return err
		}

		result = value

		return nil
	}

	notify := func(err error, delay time.Duration) {
		LogTestInfo("operation failed, retrying", "attempt", attempt, "delay", delay, "error", err.Error())
	}

	if err := backoff.RetryNotifyWithTimer(op, newBackOff(ctx, options), notify, options.Timer); err != nil {
		var zero T

		return zero, err
	}

	return result, nil
}

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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/helloservice/test/api"
)

// recordingTimer fires immediately and remembers every requested delay.
type recordingTimer struct {
	delays []time.Duration
	c      chan time.Time
}

func newRecordingTimer() *recordingTimer {
	return &recordingTimer{
		c: make(chan time.Time, 1),
	}
}

func (t *recordingTimer) Start(duration time.Duration) {
	t.delays = append(t.delays, duration)
	t.c <- time.Now()
}

func (t *recordingTimer) Stop() {}

func (t *recordingTimer) C() <-chan time.Time {
	return t.c
}

var _ = Describe("RetryWithBackoff", func() {
	var (
		timer   *recordingTimer
		options api.RetryOptions
		ctx     context.Context
	)

	BeforeEach(func() {
		timer = newRecordingTimer()
		options = api.DefaultRetryOptions()
		options.Timer = timer
		ctx = context.Background()
	})

	It("should default to three retries from one second", func() {
		defaults := api.DefaultRetryOptions()
		Expect(defaults.MaxRetries).To(Equal(3))
		Expect(defaults.BaseDelay).To(Equal(time.Second))
	})

	It("should not wait when the first attempt succeeds", func() {
		calls := 0

		result, err := api.RetryWithBackoff(ctx, func(context.Context) (string, error) {
			calls++
			return "ok", nil
		}, options)

		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal("ok"))
		Expect(calls).To(Equal(1))
		Expect(timer.delays).To(BeEmpty())
	})

	It("should double the delay between attempts until one succeeds", func() {
		calls := 0

		result, err := api.RetryWithBackoff(ctx, func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("not yet")
			}

			return calls, nil
		}, options)

		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(3))
		Expect(timer.delays).To(Equal([]time.Duration{time.Second, 2 * time.Second}))
	})

	It("should return the final error unchanged after four attempts", func() {
		var errs []error

		_, err := api.RetryWithBackoff(ctx, func(context.Context) (struct{}, error) {
			err := fmt.Errorf("attempt %d failed", len(errs)+1)
			errs = append(errs, err)

			return struct{}{}, err
		}, options)

		Expect(errs).To(HaveLen(4))
		Expect(err).To(BeIdenticalTo(errs[3]))
		Expect(timer.delays).To(Equal([]time.Duration{time.Second, 2 * time.Second, 4 * time.Second}))
	})

	It("should make a single attempt without retries", func() {
		options.MaxRetries = 0
		calls := 0

		_, err := api.RetryWithBackoff(ctx, func(context.Context) (bool, error) {
			calls++
			return false, errors.New("nope")
		}, options)

		Expect(err).To(MatchError("nope"))
		Expect(calls).To(Equal(1))
		Expect(timer.delays).To(BeEmpty())
	})

	It("should stop when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		calls := 0

		_, err := api.RetryWithBackoff(ctx, func(context.Context) (bool, error) {
			calls++
			return false, errors.New("nope")
		}, options)

		Expect(err).To(MatchError(context.Canceled))
		Expect(calls).To(Equal(1))
	})

	It("should wait in real time without a timer", func() {
		options := api.RetryOptions{
			MaxRetries: 2,
			BaseDelay:  10 * time.Millisecond,
		}

		calls := 0
		start := time.Now()

		_, err := api.RetryWithBackoff(ctx, func(context.Context) (bool, error) {
			calls++
			return false, errors.New("nope")
		}, options)

		Expect(err).To(MatchError("nope"))
		Expect(calls).To(Equal(3))
		Expect(time.Since(start)).To(BeNumerically(">=", 30*time.Millisecond))
	})
})

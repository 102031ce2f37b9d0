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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/helloservice/test/api"
)

var _ = Describe("Utilities", func() {
	It("should generate alphanumeric strings of the requested length", func() {
		Expect(api.GenerateRandomString(0)).To(BeEmpty())
		Expect(api.GenerateRandomString(32)).To(MatchRegexp(`^[A-Za-z0-9]{32}$`))
		Expect(api.GenerateRandomString(16)).NotTo(Equal(api.GenerateRandomString(16)))
	})

	It("should generate example.com addresses", func() {
		Expect(api.GenerateRandomEmail()).To(MatchRegexp(`^test\.[A-Za-z0-9]{6}@example\.com$`))
	})

	It("should generate test IDs", func() {
		Expect(api.GenerateTestID()).To(MatchRegexp(`^test-[0-9a-f]{8}$`))
	})

	Context("When waiting for a condition", func() {
		ctx := context.Background()

		It("should return once the condition holds", func() {
			calls := 0

			Expect(api.WaitForCondition(ctx, func() (bool, error) {
				calls++
				return calls == 3, nil
			}, 5*time.Second, "third time lucky")).To(Succeed())
			Expect(calls).To(Equal(3))
		})

		It("should time out with the supplied message", func() {
			err := api.WaitForCondition(ctx, func() (bool, error) {
				return false, nil
			}, 300*time.Millisecond, "never happens")

			Expect(err).To(MatchError(api.ErrConditionNotMet))
			Expect(err).To(MatchError(ContainSubstring("never happens")))
		})

		It("should abort on condition errors", func() {
			cause := errors.New("broken")

			err := api.WaitForCondition(ctx, func() (bool, error) {
				return false, cause
			}, 5*time.Second, "broken")

			Expect(err).To(MatchError(cause))
			Expect(err).NotTo(MatchError(api.ErrConditionNotMet))
		})
	})
})

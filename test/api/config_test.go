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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/helloservice/test/api"

	"k8s.io/utils/ptr"
)

//nolint:gochecknoglobals
var configVariables = []string{
	"API_BASE_URL",
	"SERVICE_BASE_URL",
	"TEST_PROFILE",
	"TEST_ENVIRONMENT",
	"REQUEST_TIMEOUT",
	"COMMAND_TIMEOUT",
	"READINESS_TIMEOUT",
	"READINESS_INTERVAL",
	"EMBEDDED_SERVICE",
	"DEBUG_LOGGING",
	"LOG_REQUESTS",
	"LOG_RESPONSES",
}

var _ = Describe("Test configuration", func() {
	BeforeEach(func() {
		for _, key := range configVariables {
			setEnv(key, nil)
		}
	})

	Context("When using profile defaults", func() {
		It("should use short timeouts for the standard profile", func() {
			config := api.DefaultTestConfig(api.ProfileStandard)

			Expect(config.BaseURL).To(Equal(api.DefaultAPIBaseURL))
			Expect(config.ServiceURL).To(Equal(api.DefaultServiceBaseURL))
			Expect(config.RequestTimeout).To(Equal(10 * time.Second))
			Expect(config.ReadinessTimeout).To(Equal(30 * time.Second))
			Expect(config.ReadinessInterval).To(Equal(2 * time.Second))
			Expect(config.CaptureTraffic).To(BeFalse())
			Expect(config.Validate()).To(Succeed())
		})

		It("should capture traffic for the local profile", func() {
			config := api.DefaultTestConfig(api.ProfileLocal)

			Expect(config.Environment).To(Equal("local"))
			Expect(config.RequestTimeout).To(Equal(15 * time.Second))
			Expect(config.CommandTimeout).To(Equal(15 * time.Second))
			Expect(config.CaptureTraffic).To(BeTrue())
			Expect(config.LogRequests).To(BeTrue())
			Expect(config.LogResponses).To(BeTrue())
		})
	})

	Context("When loading from the environment", func() {
		It("should run against the embedded service by default", func() {
			config, err := api.LoadTestConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(config.EmbeddedService).To(BeTrue())
			Expect(config.Profile).To(Equal(api.ProfileStandard))
		})

		It("should honour overrides", func() {
			setEnv("API_BASE_URL", ptr.To("https://hello.example.com/api/v1"))
			setEnv("SERVICE_BASE_URL", ptr.To("https://hello.example.com"))
			setEnv("TEST_PROFILE", ptr.To("local"))
			setEnv("READINESS_TIMEOUT", ptr.To("5s"))
			setEnv("READINESS_INTERVAL", ptr.To("250ms"))
			setEnv("DEBUG_LOGGING", ptr.To("true"))

			config, err := api.LoadTestConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(config.BaseURL).To(Equal("https://hello.example.com/api/v1"))
			Expect(config.ServiceURL).To(Equal("https://hello.example.com"))
			Expect(config.Profile).To(Equal(api.ProfileLocal))
			Expect(config.RequestTimeout).To(Equal(15 * time.Second))
			Expect(config.ReadinessTimeout).To(Equal(5 * time.Second))
			Expect(config.ReadinessInterval).To(Equal(250 * time.Millisecond))
			Expect(config.DebugLogging).To(BeTrue())
			Expect(config.EmbeddedService).To(BeFalse())
		})

		It("should treat an empty API base URL as unset", func() {
			setEnv("API_BASE_URL", ptr.To(""))

			config, err := api.LoadTestConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(config.BaseURL).To(Equal(api.DefaultAPIBaseURL))
			Expect(config.EmbeddedService).To(BeTrue())
		})

		It("should report every unparseable value", func() {
			setEnv("REQUEST_TIMEOUT", ptr.To("soon"))
			setEnv("LOG_REQUESTS", ptr.To("maybe"))

			_, err := api.LoadTestConfig()
			Expect(err).To(MatchError(api.ErrInvalidConfig))
			Expect(err).To(MatchError(ContainSubstring("REQUEST_TIMEOUT")))
			Expect(err).To(MatchError(ContainSubstring("LOG_REQUESTS")))
		})

		DescribeTable("should reject invalid settings",
			func(key, value string) {
				setEnv(key, ptr.To(value))

				_, err := api.LoadTestConfig()
				Expect(err).To(MatchError(api.ErrInvalidConfig))
			},
			Entry("unknown profile", "TEST_PROFILE", "nightly"),
			Entry("relative API URL", "API_BASE_URL", "/api/v1"),
			Entry("service URL without host", "SERVICE_BASE_URL", "http://"),
			Entry("negative timeout", "REQUEST_TIMEOUT", "-1s"),
			Entry("zero interval", "READINESS_INTERVAL", "0s"),
			Entry("unparseable timeout", "REQUEST_TIMEOUT", "soon"),
			Entry("unparseable interval", "READINESS_INTERVAL", "2"),
			Entry("unparseable embedded flag", "EMBEDDED_SERVICE", "sometimes"),
			Entry("unparseable logging flag", "LOG_REQUESTS", "maybe"),
		)
	})

	It("should copy configuration when retargeted", func() {
		config := api.DefaultTestConfig(api.ProfileStandard)
		retargeted := config.WithBaseURLs("http://127.0.0.1:1234/api/v1", "http://127.0.0.1:1234")

		Expect(retargeted.BaseURL).To(Equal("http://127.0.0.1:1234/api/v1"))
		Expect(config.BaseURL).To(Equal(api.DefaultAPIBaseURL))
	})
})

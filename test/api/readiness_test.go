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
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/unikorn-cloud/helloservice/pkg/openapi"
	"github.com/unikorn-cloud/helloservice/pkg/server/handler"
	"github.com/unikorn-cloud/helloservice/test/api"
)

var _ = Describe("WaitForService", func() {
	var (
		server   *ghttp.Server
		config   *api.TestConfig
		requests atomic.Int32
	)

	// healthAfter answers 503 until the nth request, then 200.
	healthAfter := func(n int32) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			if requests.Add(1) < n {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}

			w.WriteHeader(http.StatusOK)
		}
	}

	BeforeEach(func() {
		requests.Store(0)

		server = ghttp.NewServer()
		DeferCleanup(server.Close)

		config = configFor(server.URL()+"/api/v1", server.URL())
		config.ReadinessInterval = 20 * time.Millisecond
	})

	It("should return immediately when the service is already healthy", func() {
		config.ReadinessInterval = 10 * time.Second
		server.RouteToHandler(http.MethodGet, "/actuator/health", healthAfter(1))

		start := time.Now()

		Expect(api.WaitForService(context.Background(), api.NewAPIClientWithConfig(config), 30*time.Second)).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically("<", time.Second))
		Expect(requests.Load()).To(BeEquivalentTo(1))
	})

	It("should keep polling until the service becomes healthy", func() {
		server.RouteToHandler(http.MethodGet, "/actuator/health", healthAfter(3))

		Expect(api.WaitForService(context.Background(), api.NewAPIClientWithConfig(config), 5*time.Second)).To(Succeed())
		Expect(requests.Load()).To(BeEquivalentTo(3))
	})

	It("should space requests by the readiness interval", func() {
		config.ReadinessInterval = 50 * time.Millisecond

		var (
			lock     sync.Mutex
			arrivals []time.Time
		)

		record := func(_ http.ResponseWriter, _ *http.Request) {
			lock.Lock()
			defer lock.Unlock()

			arrivals = append(arrivals, time.Now())
		}

		server.RouteToHandler(http.MethodGet, "/actuator/health", ghttp.CombineHandlers(record, healthAfter(4)))

		Expect(api.WaitForService(context.Background(), api.NewAPIClientWithConfig(config), 5*time.Second)).To(Succeed())

		lock.Lock()
		defer lock.Unlock()

		Expect(arrivals).To(HaveLen(4))

		for i := 1; i < len(arrivals); i++ {
			Expect(arrivals[i].Sub(arrivals[i-1])).To(BeNumerically(">=", config.ReadinessInterval), "gap %d", i)
		}
	})

	It("should return the caller's error when cancelled before the first attempt", func() {
		server.RouteToHandler(http.MethodGet, "/actuator/health", ghttp.RespondWith(http.StatusOK, nil))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := api.WaitForService(ctx, api.NewAPIClientWithConfig(config), 30*time.Second)
		Expect(err).To(MatchError(context.Canceled))
		Expect(err).NotTo(MatchError(api.ErrServiceNotReady))
	})

	It("should return the caller's error when cancelled while polling", func() {
		server.RouteToHandler(http.MethodGet, "/actuator/health", ghttp.RespondWith(http.StatusServiceUnavailable, nil))

		ctx, cancel := context.WithCancel(context.Background())
		DeferCleanup(cancel)

		time.AfterFunc(100*time.Millisecond, cancel)

		start := time.Now()

		err := api.WaitForService(ctx, api.NewAPIClientWithConfig(config), 30*time.Second)
		Expect(err).To(MatchError(context.Canceled))
		Expect(err).NotTo(MatchError(api.ErrServiceNotReady))
		Expect(time.Since(start)).To(BeNumerically("<", 5*time.Second))
	})

	It("should give up once the budget is spent", func() {
		server.RouteToHandler(http.MethodGet, "/actuator/health", ghttp.RespondWith(http.StatusServiceUnavailable, nil))

		start := time.Now()

		err := api.WaitForService(context.Background(), api.NewAPIClientWithConfig(config), 200*time.Millisecond)
		Expect(err).To(MatchError(api.ErrServiceNotReady))
		Expect(time.Since(start)).To(And(
			BeNumerically(">=", 200*time.Millisecond),
			BeNumerically("<", 5*time.Second),
		))
		Expect(len(server.ReceivedRequests())).To(BeNumerically(">", 1))
	})

	It("should use the configured budget when none is given", func() {
		config.ReadinessTimeout = 100 * time.Millisecond
		server.RouteToHandler(http.MethodGet, "/actuator/health", ghttp.RespondWith(http.StatusServiceUnavailable, nil))

		Expect(api.WaitForService(context.Background(), api.NewAPIClientWithConfig(config), 0)).To(MatchError(api.ErrServiceNotReady))
	})

	It("should treat connection failures as not ready", func() {
		server.Close()

		err := api.WaitForService(context.Background(), api.NewAPIClientWithConfig(config), 100*time.Millisecond)
		Expect(err).To(MatchError(api.ErrServiceNotReady))
		Expect(err).To(MatchError(api.ErrTransport))
	})

	It("should fail the spec through MustWaitForService", func() {
		config.ReadinessTimeout = 100 * time.Millisecond
		server.RouteToHandler(http.MethodGet, "/actuator/health", ghttp.RespondWith(http.StatusServiceUnavailable, nil))

		failures := InterceptGomegaFailures(func() {
			api.MustWaitForService(context.Background(), api.NewAPIClientWithConfig(config))
		})

		Expect(failures).To(HaveLen(1))
	})

	It("should wait for the embedded service to report healthy", func() {
		var ready atomic.Bool

		warmup := handler.NewIndicator("warmup", func(context.Context) openapi.ComponentHealth {
			if ready.Load() {
				return openapi.ComponentHealth{Status: openapi.Up}
			}

			return openapi.ComponentHealth{Status: openapi.Down}
		})

		service, err := api.StartEmbeddedService(context.Background(), warmup, handler.Ping())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(service.Close)

		embedded := service.Configure(config)

		time.AfterFunc(100*time.Millisecond, func() { ready.Store(true) })

		Expect(api.WaitForService(context.Background(), api.NewAPIClientWithConfig(embedded), 5*time.Second)).To(Succeed())
	})
})

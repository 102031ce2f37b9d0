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
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/onsi/gomega"

	"k8s.io/apimachinery/pkg/util/wait"
)

// ErrServiceNotReady is returned when the health endpoint did not report
// healthy within the readiness budget.
var ErrServiceNotReady = errors.New("service not ready")

// WaitForService polls the health endpoint every ReadinessInterval until it
// returns 200, or fails once the budget is spent. A non-positive budget uses
// the configured ReadinessTimeout. The deadline is fixed on entry, so the
// budget covers all requests and waits together. If ctx is cancelled before
// the budget is spent its error is returned instead of ErrServiceNotReady.
func WaitForService(ctx context.Context, client *APIClient, budget time.Duration) error {
	if budget <= 0 {
		budget = client.config.ReadinessTimeout
	}

	var (
		attempts   int
		lastStatus int
		lastErr    error
	)

	start := time.Now()

	err := wait.PollUntilContextTimeout(ctx, client.config.ReadinessInterval, budget, true, func(ctx context.Context) (bool, error) {
		attempts++

		resp, err := client.Actuator(ctx, client.endpoints.HealthCheck())
		if err != nil {
			// Connection refused and friends just mean not ready yet.
			lastErr = err

			return false, nil
		}

		lastStatus = resp.Status
		lastErr = nil

		return resp.Status == http.StatusOK, nil
	})

	if err == nil {
		LogTestInfo("service ready", "attempts", attempts, "elapsed", time.Since(start))

		return nil
	}

	// Cancellation by the caller is not a readiness verdict.
	if ctxErr := ctx.Err(); ctxErr != nil && time.Since(start) < budget {
		return fmt.Errorf("waiting for service interrupted after %d attempts: %w", attempts, ctxErr)
	}

	if lastErr != nil {
		return fmt.Errorf("%w after %s and %d attempts: %w", ErrServiceNotReady, budget, attempts, lastErr)
	}

	return fmt.Errorf("%w after %s and %d attempts: last status %d", ErrServiceNotReady, budget, attempts, lastStatus)
}

// MustWaitForService fails the current spec if the service is not ready.
func MustWaitForService(ctx context.Context, client *APIClient) {
	gomega.ExpectWithOffset(1, WaitForService(ctx, client, client.config.ReadinessTimeout)).To(gomega.Succeed())
}

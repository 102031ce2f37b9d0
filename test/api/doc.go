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

// Package api provides end-to-end test utilities for the Hello Service API.
//
// # Separate Client Implementation
//
// This package intentionally maintains its own HTTP client (APIClient)
// rather than sharing types with the service. Any change to the API contract
// must be reflected here, which keeps API evolution explicit and reviewable.
//
// The client never fails on an HTTP status: every response, including 4xx
// and 5xx, is returned for the spec to assert on. Only transport failures,
// where no response was received, are returned as errors wrapping
// ErrTransport.
//
// # Helpers
//
//   - Readiness polling of the actuator health endpoint (WaitForService)
//   - JSON API response validation (BeAPIResponse, ValidateAPIResponse)
//   - Shallow schema checks (ValidateJSONSchema) and OpenAPI contract checks
//     (ContractValidator)
//   - Exponential backoff retries (RetryWithBackoff)
//   - Timestamped diagnostics via GinkgoWriter (LogTestInfo)
//
// # Embedded Service
//
// When API_BASE_URL is not set, the suites start the reference service
// in-process so they can run without any external dependencies.
package api

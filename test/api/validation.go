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
package api

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
	"github.com/spjmurray/go-util/pkg/set"
)

// DefaultExpectedStatus is what ValidateAPIResponse expects unless told otherwise.
const DefaultExpectedStatus = http.StatusOK

type apiResponseMatcher struct {
	expectedStatus int
	reason         string
}

// BeAPIResponse succeeds when the response has the expected status and a
// content-type header containing application/json.
func BeAPIResponse(expectedStatus int) types.GomegaMatcher {
	return &apiResponseMatcher{
		expectedStatus: expectedStatus,
	}
}

func (m *apiResponseMatcher) Match(actual interface{}) (bool, error) {
	resp, ok := actual.(*Response)
	if !ok || resp == nil {
		return false, fmt.Errorf("BeAPIResponse matcher expects a *api.Response, got:\n%s", format.Object(actual, 1))
	}

	if resp.Status != m.expectedStatus {
		m.reason = fmt.Sprintf("status %d, expected %d", resp.Status, m.expectedStatus)
		return false, nil
	}

	contentType := resp.Header.Values("Content-Type")
	if len(contentType) == 0 {
		m.reason = "no content-type header"
		return false, nil
	}

	if !slices.ContainsFunc(contentType, func(value string) bool { return strings.Contains(value, "application/json") }) {
		m.reason = fmt.Sprintf("content-type %q does not include application/json", strings.Join(contentType, ", "))
		return false, nil
	}

	return true, nil
}

func (m *apiResponseMatcher) FailureMessage(actual interface{}) string {
	return fmt.Sprintf("Expected a JSON API response with status %d, got %s\nbody: %s", m.expectedStatus, m.reason, responseBody(actual))
}

func (m *apiResponseMatcher) NegatedFailureMessage(actual interface{}) string {
	return fmt.Sprintf("Expected anything but a JSON API response with status %d\nbody: %s", m.expectedStatus, responseBody(actual))
}

func responseBody(actual interface{}) string {
	if resp, ok := actual.(*Response); ok && resp != nil {
		return string(resp.Body)
	}

	return ""
}

// ValidateAPIResponse fails the current spec unless the response has the
// expected status and a JSON content type.
func ValidateAPIResponse(resp *Response, expectedStatus int) {
	ExpectWithOffset(1, resp).To(BeAPIResponse(expectedStatus))
}

// MissingComponents returns the required health components absent from a
// decoded health document, sorted.
func MissingComponents(health map[string]interface{}, required ...string) []string {
	components, _ := health["components"].(map[string]interface{})
	present := set.New[string](slices.Collect(maps.Keys(components))...)

	missing := slices.Collect(set.New[string](required...).Difference(present).All())
	slices.Sort(missing)

	return missing
}

// VerifyHealthComponents fails the current spec if any required component is
// absent or not UP.
func VerifyHealthComponents(health map[string]interface{}, required ...string) {
	ExpectWithOffset(1, MissingComponents(health, required...)).To(BeEmpty(), "health components missing")

	components, _ := health["components"].(map[string]interface{})

	for _, name := range required {
		component, ok := components[name].(map[string]interface{})
		ExpectWithOffset(1, ok).To(BeTrue(), "component %s is not an object", name)
		ExpectWithOffset(1, component).To(HaveKeyWithValue("status", "UP"), "component %s is not UP", name)
	}
}

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

//go:generate mockgen -source=api_client.go -destination=mock/interfaces.go -package=mock

//nolint:err113,revive // dynamic errors and naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/onsi/ginkgo/v2"
)

// ErrTransport is returned when no HTTP response was received at all, as
// opposed to a response with a failing status code.
var ErrTransport = errors.New("http transport failure")

// Doer issues HTTP requests, *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type APIClient struct {
	baseURL    string
	serviceURL string
	client     Doer
	config     *TestConfig
	endpoints  *Endpoints
	logger     logr.Logger
}

// ClientOption customizes an APIClient.
type ClientOption func(*APIClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client Doer) ClientOption {
	return func(c *APIClient) {
		c.client = client
	}
}

// WithLogger replaces the default GinkgoWriter logger.
func WithLogger(logger logr.Logger) ClientOption {
	return func(c *APIClient) {
		c.logger = logger
	}
}

func NewAPIClient(baseURL string) (*APIClient, error) {
	config, err := LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if baseURL != "" {
		config = config.WithBaseURLs(baseURL, config.ServiceURL)
	}

	return NewAPIClientWithConfig(config), nil
}

func NewAPIClientWithConfig(config *TestConfig, opts ...ClientOption) *APIClient {
	c := &APIClient{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		serviceURL: strings.TrimSuffix(config.ServiceURL, "/"),
		// Timeouts are applied per request via the context.
		client:    &http.Client{},
		config:    config,
		endpoints: NewEndpoints(),
		logger:    NewTestLogger(ginkgo.GinkgoWriter, config.DebugLogging).WithName("client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *APIClient) Config() *TestConfig {
	return c.config
}

func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// logError logs a transport error with trace context.
func (c *APIClient) logError(request *Request, duration time.Duration, traceParent string, err error, context string) {
	c.logger.Error(err, context, "method", request.Method, "url", request.URL, "duration", duration, "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	c.logger.Info("TRACE CONTEXT: use the trace ID to search logs for this request", "traceID", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// we are using this to create a new trace ID for each request so if an error occurs we can find the request in the logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// BuildRequest returns the descriptor for an API call without issuing it.
func (c *APIClient) BuildRequest(method, path string, body any, opts ...RequestOption) *Request {
	return newRequest(method, c.baseURL+path, body, c.config.RequestTimeout, opts...)
}

// Request issues a call against the API base URL. Any HTTP status is
// returned as a Response, only transport failures produce an error.
func (c *APIClient) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, c.BuildRequest(method, path, body, opts...))
}

func (c *APIClient) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, opts...)
}

func (c *APIClient) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, opts...)
}

func (c *APIClient) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, body, opts...)
}

func (c *APIClient) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, opts...)
}

// Actuator issues a GET relative to the service root rather than the API.
func (c *APIClient) Actuator(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, newRequest(http.MethodGet, c.serviceURL+path, nil, c.config.RequestTimeout, opts...))
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) Do(ctx context.Context, request *Request) (*Response, error) {
	var body io.Reader

	if request.Body != nil {
		data, err := json.Marshal(request.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	if request.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, request.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, request.Method, request.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, value := range request.Headers {
		req.Header.Set(key, value)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(request, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, request.Method, request.URL, err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(request, duration, traceParent, err, "reading response body")
		return nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	if c.config.LogRequests {
		c.logger.Info("request complete", "method", request.Method, "url", request.URL, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.logger.Info("response body", "method", request.Method, "url", request.URL, "body", string(respBody))
	}

	return &Response{
		Request:       request,
		Status:        resp.StatusCode,
		Header:        resp.Header,
		ContentLength: resp.ContentLength,
		Body:          respBody,
	}, nil
}

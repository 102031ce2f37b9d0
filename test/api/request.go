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
	"net/http"
	"time"
)

// Request describes a single HTTP call. It is built fresh for each call and
// is not modified once issued.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is encoded as JSON when not nil.
	Body any
	// FailOnStatusCode is always false, every status is handed back to the
	// caller for inspection.
	FailOnStatusCode bool
	// Timeout aborts this request only.
	Timeout time.Duration
}

// RequestOption overrides part of a request before it is issued.
type RequestOption func(*Request)

// WithHeader sets a header, replacing any default with the same name.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.Headers[http.CanonicalHeaderKey(key)] = value
	}
}

// WithHeaders sets several headers, replacing defaults on collision.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *Request) {
		for key, value := range headers {
			r.Headers[http.CanonicalHeaderKey(key)] = value
		}
	}
}

// WithoutHeader removes a default header.
func WithoutHeader(key string) RequestOption {
	return func(r *Request) {
		delete(r.Headers, http.CanonicalHeaderKey(key))
	}
}

// WithTimeout overrides the configured per-request timeout.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = timeout
	}
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

func newRequest(method, url string, body any, timeout time.Duration, opts ...RequestOption) *Request {
	request := &Request{
		Method:  method,
		URL:     url,
		Headers: defaultHeaders(),
		Body:    body,
		Timeout: timeout,
	}

	for _, opt := range opts {
		opt(request)
	}

	request.FailOnStatusCode = false

	return request
}

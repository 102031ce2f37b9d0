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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Response is the normalized result of one HTTP request. It is read-only
// once received.
type Response struct {
	// Request is the descriptor that produced this response.
	Request       *Request
	Status        int
	Header        http.Header
	ContentLength int64
	Body          []byte
}

// ContentType returns the content-type header, or an empty string.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Headers flattens the headers into lower case keys, multiple values are
// comma separated.
func (r *Response) Headers() map[string]string {
	headers := make(map[string]string, len(r.Header))

	for key, values := range r.Header {
		headers[strings.ToLower(key)] = strings.Join(values, ", ")
	}

	return headers
}

// JSON decodes the body as a JSON object.
func (r *Response) JSON() (map[string]interface{}, error) {
	var body map[string]interface{}

	if err := r.Decode(&body); err != nil {
		return nil, err
	}

	return body, nil
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling response body: %w", err)
	}

	return nil
}

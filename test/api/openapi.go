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
	"net/url"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"

	"github.com/unikorn-cloud/helloservice/pkg/openapi"
)

var ErrUndocumentedOperation = errors.New("operation not documented")

// ContractValidator checks responses against the service's OpenAPI document,
// independently of the hand written client.
type ContractValidator struct {
	doc *openapi3.T
}

func NewContractValidator(ctx context.Context) (*ContractValidator, error) {
	doc, err := openapi.GetSwagger()
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	return &ContractValidator{
		doc: doc,
	}, nil
}

func (v *ContractValidator) route(method, path string) (*routers.Route, error) {
	pathItem := v.doc.Paths.Find(path)
	if pathItem == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrUndocumentedOperation, method, path)
	}

	operation := pathItem.GetOperation(method)
	if operation == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrUndocumentedOperation, method, path)
	}

	return &routers.Route{
		Spec:      v.doc,
		Path:      path,
		PathItem:  pathItem,
		Method:    method,
		Operation: operation,
	}, nil
}

// ValidateResponse checks the status code is documented for the operation
// that produced the response, and that the body matches its schema.
func (v *ContractValidator) ValidateResponse(ctx context.Context, resp *Response) error {
	if resp.Request == nil {
		return fmt.Errorf("%w: response has no request", ErrUndocumentedOperation)
	}

	u, err := url.Parse(resp.Request.URL)
	if err != nil {
		return fmt.Errorf("parsing request url: %w", err)
	}

	route, err := v.route(resp.Request.Method, u.Path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, resp.Request.Method, resp.Request.URL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request: req,
			Route:   route,
		},
		Status: resp.Status,
		Header: resp.Header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}

	input.SetBodyBytes(resp.Body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("response does not match contract: %w", err)
	}

	return nil
}

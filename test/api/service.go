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
	"net/http/httptest"
	"os"

	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/helloservice/pkg/server"
	"github.com/unikorn-cloud/helloservice/pkg/server/handler"
)

// EmbeddedService is an in-process instance of the reference service used
// when no external service is configured.
type EmbeddedService struct {
	server *httptest.Server
}

// StartEmbeddedService starts the reference service on a loopback port.
func StartEmbeddedService(ctx context.Context, indicators ...handler.Indicator) (*EmbeddedService, error) {
	options := server.DefaultOptions()
	options.DiskSpacePath = os.TempDir()

	opts := []server.Option{
		server.WithLogger(NewTestLogger(ginkgo.GinkgoWriter, false).WithName("service")),
	}

	if len(indicators) > 0 {
		opts = append(opts, server.WithIndicators(indicators...))
	}

	router, err := server.New(options, opts...).Handler(ctx)
	if err != nil {
		return nil, err
	}

	return &EmbeddedService{
		server: httptest.NewServer(router),
	}, nil
}

// URL is the service root.
func (s *EmbeddedService) URL() string {
	return s.server.URL
}

// Configure returns a copy of config pointed at this service.
func (s *EmbeddedService) Configure(config *TestConfig) *TestConfig {
	return config.WithBaseURLs(s.server.URL+"/api/v1", s.server.URL)
}

func (s *EmbeddedService) Close() {
	s.server.Close()
}

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

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/helloservice/pkg/openapi"
	"github.com/unikorn-cloud/helloservice/pkg/server/handler"
	"github.com/unikorn-cloud/helloservice/pkg/server/util"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

type Server struct {
	options    *Options
	logger     logr.Logger
	metrics    *Metrics
	indicators []handler.Indicator
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger overrides the controller-runtime root logger.
func WithLogger(logger logr.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithIndicators replaces the default health indicators.
func WithIndicators(indicators ...handler.Indicator) Option {
	return func(s *Server) {
		s.indicators = indicators
	}
}

func New(options *Options, opts ...Option) *Server {
	s := &Server{
		options: options,
		logger:  log.Log.WithName("server"),
		metrics: NewMetrics(),
		indicators: []handler.Indicator{
			handler.DiskSpace(options.DiskSpacePath),
			handler.Ping(),
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Metrics exposes the server's metrics registry.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler builds the complete routing tree.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	swagger, err := openapi.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}

	if err := swagger.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating openapi document: %w", err)
	}

	document, err := swagger.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding openapi document: %w", err)
	}

	h := handler.New(s.metrics, document, s.indicators...)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.instrument)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		util.WriteError(w, r, http.StatusNotFound, "resource not found")
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		util.WriteError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// The Prometheus exposition format is not JSON so lives outside the schema.
	router.Method(http.MethodGet, "/actuator/prometheus", s.metrics.Handler())

	options := openapi.ChiServerOptions{
		BaseRouter: router,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			util.WriteError(w, r, http.StatusBadRequest, err.Error())
		},
	}

	return openapi.HandlerWithOptions(h, options), nil
}

// Run serves until the context is cancelled, then drains in flight requests.
func (s *Server) Run(ctx context.Context) error {
	router, err := s.Handler(ctx)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              s.options.ListenAddress,
		ReadTimeout:       s.options.ReadTimeout,
		ReadHeaderTimeout: s.options.ReadHeaderTimeout,
		WriteTimeout:      s.options.WriteTimeout,
		Handler:           router,
	}

	errs := make(chan error, 1)

	go func() {
		errs <- server.ListenAndServe()
	}()

	s.logger.Info("server listening", "address", s.options.ListenAddress)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
		defer cancel()

		s.logger.Info("server shutting down")

		return server.Shutdown(shutdownCtx)
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}
}

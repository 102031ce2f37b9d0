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

//nolint:revive
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/unikorn-cloud/helloservice/pkg/constants"
	"github.com/unikorn-cloud/helloservice/pkg/openapi"
	"github.com/unikorn-cloud/helloservice/pkg/server/util"

	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Ensure the generated routing tree can dispatch to us.
var _ openapi.ServerInterface = (*Handler)(nil)

// MetricNamer lists the metrics known to the service.
type MetricNamer interface {
	Names() ([]string, error)
}

type Handler struct {
	// metrics backs the metrics listing endpoint.
	metrics MetricNamer

	// document is the JSON encoded OpenAPI document.
	document json.RawMessage

	// indicators are aggregated into the health endpoint.
	indicators []Indicator
}

func New(metrics MetricNamer, document json.RawMessage, indicators ...Indicator) *Handler {
	return &Handler{
		metrics:    metrics,
		document:   document,
		indicators: indicators,
	}
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func (h *Handler) GetApiV1Hello(w http.ResponseWriter, r *http.Request) {
	util.WriteJSONResponse(w, r, http.StatusOK, &openapi.HelloResponse{
		Message: constants.HelloMessage,
	})
}

func (h *Handler) GetApiV1HelloHealth(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)

	util.WriteJSONResponse(w, r, http.StatusOK, &openapi.HelloHealthResponse{
		Status:    openapi.Up,
		Service:   constants.ServiceName,
		Timestamp: time.Now().UTC(),
	})
}

func (h *Handler) GetApiV1OpenapiJson(w http.ResponseWriter, r *http.Request) {
	util.WriteJSONResponse(w, r, http.StatusOK, h.document)
}

// GetActuatorHealth aggregates all indicators, any component that is down takes the
// whole service down and yields a 503.
func (h *Handler) GetActuatorHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := openapi.Up
	components := map[string]openapi.ComponentHealth{}

	for _, indicator := range h.indicators {
		component := indicator.Check(ctx)

		if !component.Status.Healthy() {
			log.FromContext(ctx).Info("health component down", "component", indicator.Name())

			status = openapi.Down
		}

		components[indicator.Name()] = component
	}

	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}

	h.setUncacheable(w)

	util.WriteJSONResponse(w, r, code, &openapi.HealthResponse{
		Status:     status,
		Components: ptr.To(components),
	})
}

func (h *Handler) GetActuatorMetrics(w http.ResponseWriter, r *http.Request) {
	names, err := h.metrics.Names()
	if err != nil {
		log.FromContext(r.Context()).Error(err, "unable to gather metrics")
		util.WriteError(w, r, http.StatusInternalServerError, "unable to gather metrics")

		return
	}

	h.setUncacheable(w)

	util.WriteJSONResponse(w, r, http.StatusOK, &openapi.MetricNamesResponse{
		Names: names,
	})
}

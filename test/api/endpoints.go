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

// Endpoints contains all API endpoint patterns.
//
// API endpoints are relative to the API base URL, actuator endpoints are
// relative to the service root.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Greeting endpoints.
func (e *Endpoints) Hello() string {
	return "/hello"
}

func (e *Endpoints) HelloHealth() string {
	return "/hello/health"
}

func (e *Endpoints) OpenAPISpec() string {
	return "/openapi.json"
}

// Actuator endpoints.
func (e *Endpoints) HealthCheck() string {
	return "/actuator/health"
}

func (e *Endpoints) Metrics() string {
	return "/actuator/metrics"
}

func (e *Endpoints) Prometheus() string {
	return "/actuator/prometheus"
}

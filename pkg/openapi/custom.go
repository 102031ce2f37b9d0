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

//go:generate go tool oapi-codegen -config types.config.yaml server.spec.yaml
//go:generate go tool oapi-codegen -config router.config.yaml server.spec.yaml
//go:generate go tool oapi-codegen -config schema.config.yaml server.spec.yaml

package openapi

import (
	"errors"
	"fmt"
)

var ErrInvalidHealthStatus = errors.New("invalid health status")

// UnmarshalText rejects anything other than the known status values so a
// misbehaving service is reported at decode time.
func (s *HealthStatus) UnmarshalText(text []byte) error {
	switch status := HealthStatus(text); status {
	case Up, Down:
		*s = status
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHealthStatus, string(text))
	}

	return nil
}

// Healthy is a convenience wrapper.
func (s HealthStatus) Healthy() bool {
	return s == Up
}

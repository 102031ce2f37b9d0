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

package handler

import (
	"context"
	"os"

	"github.com/unikorn-cloud/helloservice/pkg/openapi"

	"k8s.io/utils/ptr"
)

// Indicator contributes a named component to the aggregated health report.
type Indicator interface {
	// Name is the key the component is reported under.
	Name() string
	// Check reports the current health of the component.
	Check(ctx context.Context) openapi.ComponentHealth
}

type indicatorFunc struct {
	name  string
	check func(ctx context.Context) openapi.ComponentHealth
}

// NewIndicator wraps a function as an Indicator.
func NewIndicator(name string, check func(ctx context.Context) openapi.ComponentHealth) Indicator {
	return &indicatorFunc{
		name:  name,
		check: check,
	}
}

func (i *indicatorFunc) Name() string {
	return i.name
}

func (i *indicatorFunc) Check(ctx context.Context) openapi.ComponentHealth {
	return i.check(ctx)
}

// Ping is always up while the process can serve requests.
func Ping() Indicator {
	return NewIndicator("ping", func(_ context.Context) openapi.ComponentHealth {
		return openapi.ComponentHealth{
			Status: openapi.Up,
		}
	})
}

// DiskSpace reports down when the data path is missing or is not a directory.
func DiskSpace(path string) Indicator {
	return NewIndicator("diskSpace", func(_ context.Context) openapi.ComponentHealth {
		details := map[string]interface{}{
			"path": path,
		}

		info, err := os.Stat(path)
		if err != nil {
			details["error"] = err.Error()

			return openapi.ComponentHealth{
				Status:  openapi.Down,
				Details: ptr.To(details),
			}
		}

		details["exists"] = info.IsDir()

		if !info.IsDir() {
			return openapi.ComponentHealth{
				Status:  openapi.Down,
				Details: ptr.To(details),
			}
		}

		return openapi.ComponentHealth{
			Status:  openapi.Up,
			Details: ptr.To(details),
		}
	})
}

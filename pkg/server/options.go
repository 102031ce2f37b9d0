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
	"os"
	"time"

	"github.com/spf13/pflag"
)

// Options allows the service to be configured on the command line.
type Options struct {
	// ListenAddress tells the server what to listen on.
	ListenAddress string

	// ReadTimeout bounds reading a whole request.
	ReadTimeout time.Duration

	// ReadHeaderTimeout bounds reading the request headers.
	ReadHeaderTimeout time.Duration

	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration

	// ShutdownTimeout is how long in flight requests have to drain.
	ShutdownTimeout time.Duration

	// DiskSpacePath is checked by the disk space health indicator.
	DiskSpacePath string
}

// DefaultOptions returns the values used when no flags are parsed.
func DefaultOptions() *Options {
	return &Options{
		ListenAddress:     ":8080",
		ReadTimeout:       time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      10 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		DiskSpacePath:     os.TempDir(),
	}
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	defaults := DefaultOptions()

	f.StringVar(&o.ListenAddress, "server-listen-address", defaults.ListenAddress, "API listener address.")
	f.DurationVar(&o.ReadTimeout, "server-read-timeout", defaults.ReadTimeout, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.ReadHeaderTimeout, "server-read-header-timeout", defaults.ReadHeaderTimeout, "How long to wait for the client to send headers.")
	f.DurationVar(&o.WriteTimeout, "server-write-timeout", defaults.WriteTimeout, "How long to wait for the API to respond to the client.")
	f.DurationVar(&o.ShutdownTimeout, "server-shutdown-timeout", defaults.ShutdownTimeout, "How long to wait for in flight requests on shutdown.")
	f.StringVar(&o.DiskSpacePath, "disk-space-path", defaults.DiskSpacePath, "Path reported by the disk space health indicator.")
}

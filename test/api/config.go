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
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Profile selects a set of defaults for timeouts and diagnostics.
type Profile string

const (
	// ProfileStandard is used in CI.
	ProfileStandard Profile = "standard"

	// ProfileLocal has longer timeouts and captures all traffic.
	ProfileLocal Profile = "local"
)

const (
	DefaultAPIBaseURL     = "http://localhost:8080/api/v1"
	DefaultServiceBaseURL = "http://localhost:8080"
)

var ErrInvalidConfig = errors.New("invalid test configuration")

// TestConfig is read once per spec and treated as immutable afterwards.
type TestConfig struct {
	BaseURL           string
	ServiceURL        string
	Profile           Profile
	Environment       string
	RequestTimeout    time.Duration
	CommandTimeout    time.Duration
	ReadinessTimeout  time.Duration
	ReadinessInterval time.Duration
	EmbeddedService   bool
	CaptureTraffic    bool
	DebugLogging      bool
	LogRequests       bool
	LogResponses      bool
}

// DefaultTestConfig returns the defaults for a profile.
func DefaultTestConfig(profile Profile) *TestConfig {
	config := &TestConfig{
		BaseURL:           DefaultAPIBaseURL,
		ServiceURL:        DefaultServiceBaseURL,
		Profile:           ProfileStandard,
		RequestTimeout:    10 * time.Second,
		CommandTimeout:    10 * time.Second,
		ReadinessTimeout:  30 * time.Second,
		ReadinessInterval: 2 * time.Second,
	}

	if profile == ProfileLocal {
		config.Profile = ProfileLocal
		config.Environment = "local"
		config.RequestTimeout = 15 * time.Second
		config.CommandTimeout = 15 * time.Second
		config.CaptureTraffic = true
		config.LogRequests = true
		config.LogResponses = true
	}

	return config
}

// LoadTestConfig loads configuration from environment variables and .env files.
// When no API base URL is provided the suites run against an embedded service.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	profile := Profile(getStringWithDefault("TEST_PROFILE", string(ProfileStandard)))
	if profile != ProfileStandard && profile != ProfileLocal {
		return nil, fmt.Errorf("%w: unknown profile %q", ErrInvalidConfig, profile)
	}

	defaults := DefaultTestConfig(profile)

	// An empty value is treated as unset, as for every other variable.
	externalService := os.Getenv("API_BASE_URL") != ""

	env := &envReader{}

	config := &TestConfig{
		BaseURL:           getStringWithDefault("API_BASE_URL", defaults.BaseURL),
		ServiceURL:        getStringWithDefault("SERVICE_BASE_URL", defaults.ServiceURL),
		Profile:           defaults.Profile,
		Environment:       getStringWithDefault("TEST_ENVIRONMENT", defaults.Environment),
		RequestTimeout:    env.duration("REQUEST_TIMEOUT", defaults.RequestTimeout),
		CommandTimeout:    env.duration("COMMAND_TIMEOUT", defaults.CommandTimeout),
		ReadinessTimeout:  env.duration("READINESS_TIMEOUT", defaults.ReadinessTimeout),
		ReadinessInterval: env.duration("READINESS_INTERVAL", defaults.ReadinessInterval),
		EmbeddedService:   env.boolean("EMBEDDED_SERVICE", !externalService),
		CaptureTraffic:    defaults.CaptureTraffic,
		DebugLogging:      env.boolean("DEBUG_LOGGING", false),
		LogRequests:       env.boolean("LOG_REQUESTS", defaults.LogRequests),
		LogResponses:      env.boolean("LOG_RESPONSES", defaults.LogResponses),
	}

	if env.err != nil {
		return nil, env.err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks URLs are absolute and durations are usable.
func (c *TestConfig) Validate() error {
	for name, value := range map[string]string{"API_BASE_URL": c.BaseURL, "SERVICE_BASE_URL": c.ServiceURL} {
		u, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}

		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL, got %q", ErrInvalidConfig, name, value)
		}
	}

	durations := map[string]time.Duration{
		"REQUEST_TIMEOUT":    c.RequestTimeout,
		"COMMAND_TIMEOUT":    c.CommandTimeout,
		"READINESS_TIMEOUT":  c.ReadinessTimeout,
		"READINESS_INTERVAL": c.ReadinessInterval,
	}

	for name, value := range durations {
		if value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, name, value)
		}
	}

	return nil
}

// WithBaseURLs returns a copy of the configuration pointed at a different service.
func (c *TestConfig) WithBaseURLs(baseURL, serviceURL string) *TestConfig {
	config := *c
	config.BaseURL = baseURL
	config.ServiceURL = serviceURL

	return &config
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// envReader parses typed environment variables, accumulating every
// malformed value so they can be reported together.
type envReader struct {
	err error
}

func (e *envReader) invalid(key, value string, err error) {
	e.err = multierr.Append(e.err, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, key, value, err))
}

// duration gets a duration from environment variable or returns default.
func (e *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		e.invalid(key, value, err)

		return defaultValue
	}

	return duration
}

// boolean gets a boolean from environment variable or returns default.
func (e *envReader) boolean(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		e.invalid(key, value, err)

		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env",    // From test/api/suites directory
		"../../../.env", // From test/contracts/consumer/*
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

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
	"io"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/onsi/ginkgo/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//nolint:gochecknoglobals
var (
	testLoggerLock sync.RWMutex
	testLogger     logr.Logger
	testLoggerOnce sync.Once
)

// NewTestLogger returns a console logger that prefixes every line with an
// ISO-8601 timestamp.
func NewTestLogger(w io.Writer, debug bool) logr.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)

	return zapr.NewLogger(zap.New(core))
}

// SetTestLogger replaces the logger used by LogTestInfo.
func SetTestLogger(logger logr.Logger) {
	testLoggerOnce.Do(func() {})

	testLoggerLock.Lock()
	defer testLoggerLock.Unlock()

	testLogger = logger
}

func getTestLogger() logr.Logger {
	testLoggerOnce.Do(func() {
		testLogger = NewTestLogger(ginkgo.GinkgoWriter, false).WithName("test")
	})

	testLoggerLock.RLock()
	defer testLoggerLock.RUnlock()

	return testLogger
}

// LogTestInfo emits a timestamped diagnostic message. It never panics.
func LogTestInfo(message string, keysAndValues ...any) {
	defer func() {
		_ = recover()
	}()

	getTestLogger().Info(message, keysAndValues...)
}

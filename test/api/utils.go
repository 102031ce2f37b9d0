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
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

const (
	randomStringCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	conditionPollInterval = 100 * time.Millisecond
)

var ErrConditionNotMet = errors.New("condition not met")

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

// GenerateTestID returns a short unique ID to correlate log lines for a spec.
func GenerateTestID() string {
	return generateRandomName("test")
}

// GenerateRandomString returns an alphanumeric string of the given length.
func GenerateRandomString(length int) string {
	result := make([]byte, length)
	limit := big.NewInt(int64(len(randomStringCharset)))

	for i := range result {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			n = big.NewInt(0)
		}

		result[i] = randomStringCharset[n.Int64()]
	}

	return string(result)
}

// GenerateRandomEmail returns an address under example.com.
func GenerateRandomEmail() string {
	return fmt.Sprintf("test.%s@example.com", GenerateRandomString(6))
}

// WaitForCondition polls condition every 100ms until it returns true. An
// error from the condition aborts the wait and is returned as is.
func WaitForCondition(ctx context.Context, condition func() (bool, error), timeout time.Duration, message string) error {
	err := wait.PollUntilContextTimeout(ctx, conditionPollInterval, timeout, true, func(context.Context) (bool, error) {
		return condition()
	})

	if err == nil {
		return nil
	}

	if wait.Interrupted(err) {
		return fmt.Errorf("%w: %s", ErrConditionNotMet, message)
	}

	return err
}

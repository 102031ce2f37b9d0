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
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed testdata/fixtures/*.json
var fixtures embed.FS

var ErrFixtureNotFound = errors.New("fixture not found")

// HelloServiceFixture is the typed form of the hello-service fixture.
type HelloServiceFixture struct {
	ValidHelloResponse       map[string]interface{} `json:"validHelloResponse"`
	HelloSchema              map[string]string      `json:"helloSchema"`
	RequiredHealthComponents []string               `json:"requiredHealthComponents"`
}

// Schema converts the fixture's type names into a Schema.
func (f *HelloServiceFixture) Schema() (Schema, error) {
	schema := Schema{}

	for field, name := range f.HelloSchema {
		t, err := ParseFieldType(name)
		if err != nil {
			return nil, err
		}

		schema[field] = t
	}

	return schema, nil
}

// LoadFixture decodes the named fixture into v.
func LoadFixture(name string, v any) error {
	data, err := fixtures.ReadFile(path.Join("testdata/fixtures", name+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFixtureNotFound, name)
		}

		return fmt.Errorf("reading fixture %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshaling fixture %s: %w", name, err)
	}

	return nil
}

// LoadHelloServiceFixture loads the hello-service fixture.
func LoadHelloServiceFixture() (*HelloServiceFixture, error) {
	fixture := &HelloServiceFixture{}

	if err := LoadFixture("hello-service", fixture); err != nil {
		return nil, err
	}

	return fixture, nil
}

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
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"
)

// FieldType is the expected type of a top-level JSON field. Names follow the
// JavaScript typeof vocabulary so schemas read the same as the API docs.
type FieldType int

const (
	Undefined FieldType = iota
	String
	Number
	Boolean
	Object
)

//nolint:gochecknoglobals
var fieldTypeNames = map[FieldType]string{
	Undefined: "undefined",
	String:    "string",
	Number:    "number",
	Boolean:   "boolean",
	Object:    "object",
}

// fieldTypePredicates is the dispatch table used to validate a decoded value.
//
//nolint:gochecknoglobals
var fieldTypePredicates = map[FieldType]func(any) bool{
	Undefined: func(any) bool { return false },
	String:    func(v any) bool { return typeOf(v) == String },
	Number:    func(v any) bool { return typeOf(v) == Number },
	Boolean:   func(v any) bool { return typeOf(v) == Boolean },
	Object:    func(v any) bool { return typeOf(v) == Object },
}

var (
	ErrMissingField     = errors.New("missing required field")
	ErrTypeMismatch     = errors.New("field type mismatch")
	ErrUnknownFieldType = errors.New("unknown field type")
)

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("FieldType(%d)", int(t))
}

// ParseFieldType maps a type name such as "string" to its FieldType.
func ParseFieldType(name string) (FieldType, error) {
	for t, n := range fieldTypeNames {
		if n == name {
			return t, nil
		}
	}

	return Undefined, fmt.Errorf("%w: %q", ErrUnknownFieldType, name)
}

// typeOf mirrors typeof for values produced by encoding/json, null and
// arrays are objects.
func typeOf(v any) FieldType {
	switch v.(type) {
	case string:
		return String
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return Number
	case bool:
		return Boolean
	default:
		return Object
	}
}

// Schema maps a field name to the type its value must have.
type Schema map[string]FieldType

// SchemaError describes the first field that failed validation.
type SchemaError struct {
	Field    string
	Expected FieldType
	Actual   FieldType
	Missing  bool
}

func (e *SchemaError) Error() string {
	if e.Missing {
		return "Missing required field: " + e.Field
	}

	return fmt.Sprintf("Field %s should be %s, got %s", e.Field, e.Expected, e.Actual)
}

func (e *SchemaError) Unwrap() error {
	if e.Missing {
		return ErrMissingField
	}

	return ErrTypeMismatch
}

func checkField(data map[string]any, field string, expected FieldType) error {
	value, ok := data[field]
	if !ok {
		return &SchemaError{
			Field:    field,
			Expected: expected,
			Missing:  true,
		}
	}

	predicate, ok := fieldTypePredicates[expected]
	if !ok {
		return fmt.Errorf("%w: field %s: %v", ErrUnknownFieldType, field, expected)
	}

	if !predicate(value) {
		return &SchemaError{
			Field:    field,
			Expected: expected,
			Actual:   typeOf(value),
		}
	}

	return nil
}

// ValidateJSONSchema checks only shallow, top-level fields and ignores any
// extra fields. Fields are checked in name order and the first violation is
// returned.
func ValidateJSONSchema(data map[string]any, schema Schema) (bool, error) {
	for _, field := range slices.Sorted(maps.Keys(schema)) {
		if err := checkField(data, field, schema[field]); err != nil {
			return false, err
		}
	}

	return true, nil
}

// ValidateJSONSchemaAll is like ValidateJSONSchema but reports every violation.
func ValidateJSONSchemaAll(data map[string]any, schema Schema) error {
	var errs error

	for _, field := range slices.Sorted(maps.Keys(schema)) {
		errs = multierr.Append(errs, checkField(data, field, schema[field]))
	}

	return errs
}

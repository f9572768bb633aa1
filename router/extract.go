// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"rivaas.dev/core/state"
)

// Extractor converts raw path captures and query values into typed
// values stored in request state, so handlers read domain types instead
// of strings. Extraction runs after routing and before any middleware;
// a returned *ExtractionError resolves to a 400 without entering the
// pipeline.
type Extractor interface {
	Extract(s *state.State, params Params, query url.Values) error
}

// ExtractorFunc adapts an ordinary function to the Extractor interface.
type ExtractorFunc func(s *state.State, params Params, query url.Values) error

// Extract invokes f.
func (f ExtractorFunc) Extract(s *state.State, params Params, query url.Values) error {
	return f(s, params, query)
}

// ExtractionError reports a captured segment or query value that failed
// to parse into its declared type.
type ExtractionError struct {
	Param string // capture or query parameter name
	Value string // raw text that failed to parse
	Err   error  // underlying parse failure, may be nil for absence
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("router: extract %q: missing value", e.Param)
	}
	return fmt.Sprintf("router: extract %q from %q: %v", e.Param, e.Value, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IntParam parses the named single-segment capture as an int.
func IntParam(params Params, name string) (int, error) {
	raw, ok := params.Get(name)
	if !ok {
		return 0, &ExtractionError{Param: name}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ExtractionError{Param: name, Value: raw, Err: err}
	}
	return v, nil
}

// UUIDParam parses the named single-segment capture as a UUID.
func UUIDParam(params Params, name string) (uuid.UUID, error) {
	raw, ok := params.Get(name)
	if !ok {
		return uuid.Nil, &ExtractionError{Param: name}
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ExtractionError{Param: name, Value: raw, Err: err}
	}
	return v, nil
}

// QueryInt parses a query parameter as an int, returning fallback when
// the parameter is absent.
func QueryInt(query url.Values, name string, fallback int) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ExtractionError{Param: name, Value: raw, Err: err}
	}
	return v, nil
}

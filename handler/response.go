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

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Response is the value a handler or middleware produces. It is a plain
// data carrier: status, headers, and a body. Middleware on the outbound
// phase and finalizers may replace or extend it before the transport
// adapter writes it out.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// New creates an empty Response with the given status.
func New(status int) *Response {
	return &Response{
		Status: status,
		Header: make(http.Header, 4),
	}
}

// Text creates a text/plain Response.
func Text(status int, body string) *Response {
	r := New(status)
	r.Header.Set("Content-Type", "text/plain; charset=utf-8")
	r.Body = []byte(body)
	return r
}

// JSON creates an application/json Response. Returns an error if the value
// cannot be encoded; nothing is partially written in that case.
func JSON(status int, v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("handler: JSON encoding failed for type %T: %w", v, err)
	}
	r := New(status)
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	r.Body = body
	return r, nil
}

// WithHeader sets a header and returns the same Response for chaining.
func (r *Response) WithHeader(key, value string) *Response {
	r.Header.Set(key, value)
	return r
}

// NotFound is the standard 404 response for paths no route consumes.
func NotFound() *Response {
	return Text(http.StatusNotFound, "404 page not found")
}

// MethodNotAllowed is the standard 405 response for a path that matched
// with a verb that did not. The Allow header lists the union of accepted
// verbs, sorted for deterministic output.
func MethodNotAllowed(allow []string) *Response {
	sorted := make([]string, len(allow))
	copy(sorted, allow)
	sort.Strings(sorted)

	r := Text(http.StatusMethodNotAllowed, "405 method not allowed")
	r.Header.Set("Allow", strings.Join(sorted, ", "))
	return r
}

// BadRequest is the standard 400 response for extraction failures.
func BadRequest(msg string) *Response {
	if msg == "" {
		msg = "400 bad request"
	}
	return Text(http.StatusBadRequest, msg)
}

// InternalServerError is the standard 500 response for trapped faults.
// It deliberately carries no detail about the fault.
func InternalServerError() *Response {
	return Text(http.StatusInternalServerError, "500 internal server error")
}

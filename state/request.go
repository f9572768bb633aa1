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

package state

import (
	"io"
	"net/http"
	"net/url"
)

// Request carries the parsed request metadata the dispatcher seeds into
// State before any middleware runs. Wire parsing, TLS, and body decoding
// belong to the surrounding HTTP stack; the core only consumes this
// already-parsed view plus an opaque body handle.
type Request struct {
	Method     string
	Path       string
	Header     http.Header
	Query      url.Values
	Body       io.ReadCloser
	RemoteAddr string
	Host       string
}

// FromHTTP builds the Request metadata view from a net/http request.
func FromHTTP(r *http.Request) Request {
	return Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		Header:     r.Header,
		Query:      r.URL.Query(),
		Body:       r.Body,
		RemoteAddr: r.RemoteAddr,
		Host:       r.Host,
	}
}

// requestID is the distinct State entry for the generated request
// identifier. A dedicated type keeps it from colliding with any string the
// application might store.
type requestID string

// SetRequestID stores the request identifier. Called once by the
// dispatcher when State is initialized; later calls replace the value.
func SetRequestID(s *State, id string) {
	Put(s, requestID(id))
}

// RequestID returns the identifier assigned to this request, or "" if the
// State was created outside the dispatcher and never seeded.
func RequestID(s *State) string {
	id, err := Borrow[requestID](s)
	if err != nil {
		return ""
	}
	return string(id)
}

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

// Package handler defines the terminal stage of a request pipeline and the
// Response value it produces.
//
// Handlers receive the request-scoped State (seeded with request metadata
// and extracted parameters) and return a Response value. The transport
// adapter, not the handler, is responsible for writing the response to the
// wire.
package handler

import (
	"context"

	"rivaas.dev/core/state"
)

// Handler is the terminal continuation of a pipeline chain.
//
// An error return is an unrecoverable handler fault; the dispatcher
// converts it to a 500 response at the outermost boundary. Deliberate
// non-200 outcomes are expressed as Response values, not errors.
type Handler interface {
	Handle(ctx context.Context, s *state.State) (*Response, error)
}

// Func adapts an ordinary function to the Handler interface.
type Func func(ctx context.Context, s *state.State) (*Response, error)

// Handle calls f.
func (f Func) Handle(ctx context.Context, s *state.State) (*Response, error) {
	return f(ctx, s)
}

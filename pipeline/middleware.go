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

// Package pipeline provides frozen, ordered middleware chains and the
// pipeline set that routes reference through handles.
//
// Middleware wrap the remainder of the chain onion-style: each stage
// receives a continuation for everything downstream of it (further
// middleware, then the handler) and decides whether to invoke it. The
// inbound phase runs in insertion order; the outbound phase unwinds in
// reverse. A stage that returns a Response without calling next
// short-circuits the chain deliberately — that is not a fault.
//
// Middleware instances live in a bag.Bag built during configuration;
// pipelines are compiled once from bag handles and are immutable
// afterwards, so they are shared read-only across all concurrent requests.
package pipeline

import (
	"context"

	"rivaas.dev/core/bag"
	"rivaas.dev/core/handler"
	"rivaas.dev/core/state"
)

// Next is the continuation for the downstream remainder of a chain.
// Invoking it runs the next middleware, or the handler if none remain.
type Next func(ctx context.Context, s *state.State) (*handler.Response, error)

// Middleware is a single request-processing stage.
//
// Implementations may:
//   - call next and return its result unchanged (pass-through),
//   - call next and transform the Response on the way back out, or
//   - return a Response without calling next (short-circuit).
//
// next must be called at most once. Middleware must not retain s or next
// beyond the Call invocation.
type Middleware interface {
	Call(ctx context.Context, s *state.State, next Next) (*handler.Response, error)
}

// Func adapts an ordinary function to the Middleware interface.
type Func func(ctx context.Context, s *state.State, next Next) (*handler.Response, error)

// Call invokes f.
func (f Func) Call(ctx context.Context, s *state.State, next Next) (*handler.Response, error) {
	return f(ctx, s, next)
}

// Handle is a type-erased reference to a middleware stored in a bag. It
// preserves the bag handle's lineage check while allowing middleware of
// different concrete types to share one ordered sequence.
type Handle struct {
	borrow func(*bag.Bag) Middleware
}

// HandleFor erases a typed bag handle for use in a pipeline definition.
// The constraint ties erasure to the Middleware interface at compile time:
// a handle for a non-middleware type does not compile here.
func HandleFor[M Middleware](h bag.Handle[M]) Handle {
	return Handle{borrow: func(b *bag.Bag) Middleware {
		return bag.Borrow(b, h)
	}}
}

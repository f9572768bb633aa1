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

package pipeline

import (
	"context"

	"rivaas.dev/core/bag"
	"rivaas.dev/core/handler"
	"rivaas.dev/core/state"
)

// Pipeline is a frozen ordered middleware chain. Execution order is the
// order handles were passed to New; there is no reordering after build.
//
// Thread safety: a Pipeline is immutable after New and safe for concurrent
// use without locking.
type Pipeline struct {
	chain []Middleware
}

// New compiles a pipeline by resolving each handle against the frozen bag
// the middleware were stored in. Resolution happens once, here; request
// dispatch never touches the bag again.
//
// A handle minted by a different bag's builder panics with
// bag.ErrForeignHandle — a construction-time error, never a request-time
// one.
func New(b *bag.Bag, handles ...Handle) *Pipeline {
	chain := make([]Middleware, len(handles))
	for i, h := range handles {
		chain[i] = h.borrow(b)
	}
	return &Pipeline{chain: chain}
}

// Of builds a pipeline directly from middleware instances, bypassing the
// bag. Useful for tests and for callers that do not share middleware
// between pipelines.
func Of(mw ...Middleware) *Pipeline {
	chain := make([]Middleware, len(mw))
	copy(chain, mw)
	return &Pipeline{chain: chain}
}

// Len reports the number of stages.
func (p *Pipeline) Len() int {
	return len(p.chain)
}

// Chain returns the middleware in execution order. The returned slice is a
// copy; the pipeline stays immutable.
func (p *Pipeline) Chain() []Middleware {
	out := make([]Middleware, len(p.chain))
	copy(out, p.chain)
	return out
}

// Call runs the pipeline's stages around the terminal continuation.
// Cancellation is checked before every stage and before the terminal; once
// ctx is cancelled no further stage runs.
func (p *Pipeline) Call(ctx context.Context, s *state.State, terminal Next) (*handler.Response, error) {
	return Run(ctx, s, p.chain, terminal)
}

// Run executes an explicit middleware sequence around terminal. This is
// the single execution path used by pipelines and by the dispatcher after
// it concatenates a route's chains.
//
// The onion is built as nested continuations: stage i receives a Next that
// runs stages i+1..n and then terminal. The outbound phase is therefore
// LIFO relative to invocation order, and a stage that never invokes its
// continuation cleanly short-circuits everything downstream.
func Run(ctx context.Context, s *state.State, chain []Middleware, terminal Next) (*handler.Response, error) {
	next := func(ctx context.Context, s *state.State) (*handler.Response, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return terminal(ctx, s)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		mw := chain[i]
		downstream := next
		next = func(ctx context.Context, s *state.State) (*handler.Response, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return mw.Call(ctx, s, downstream)
		}
	}

	return next(ctx, s)
}

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

package dispatch

import (
	"context"
	"time"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/state"
)

// RouteInfo identifies the matched route. The dispatcher stores it in
// State so recorders can label telemetry with the route pattern, which
// is bounded, instead of the raw path, which is not. Absent when no
// route matched.
type RouteInfo struct {
	Pattern string
	Method  string
}

// PatternOr returns the matched route pattern, or fallback when the
// request never matched a route.
func (ri RouteInfo) PatternOr(fallback string) string {
	if ri.Pattern == "" {
		return fallback
	}
	return ri.Pattern
}

// Recorder receives per-request lifecycle events. Implementations may
// start trace spans, count requests, or time them; the observe package
// provides tracing and metrics recorders.
//
// OnRequestStart may derive and return a new context (for example to
// carry a span); the returned context flows through the whole chain.
// OnRequestEnd fires after finalizers, with the response as it will be
// written. err carries the trapped fault, nil on ordinary completion.
//
// Implementations must be safe for concurrent use; one Recorder
// observes every in-flight request.
type Recorder interface {
	OnRequestStart(ctx context.Context, s *state.State) context.Context
	OnRequestEnd(ctx context.Context, s *state.State, res *handler.Response, err error, elapsed time.Duration)
}

// Recorders fans lifecycle events out to several recorders in order.
type Recorders []Recorder

func (rs Recorders) OnRequestStart(ctx context.Context, s *state.State) context.Context {
	for _, r := range rs {
		ctx = r.OnRequestStart(ctx, s)
	}
	return ctx
}

func (rs Recorders) OnRequestEnd(ctx context.Context, s *state.State, res *handler.Response, err error, elapsed time.Duration) {
	for _, r := range rs {
		r.OnRequestEnd(ctx, s, res, err, elapsed)
	}
}

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

package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/core/dispatch"
	"rivaas.dev/core/handler"
	"rivaas.dev/core/state"
)

const tracerName = "rivaas.dev/core/observe"

// TraceRecorder opens one server span per request. The span starts
// named after the method only and is renamed to "METHOD pattern" once
// the route is known, keeping span names bounded by the route table.
type TraceRecorder struct {
	tracer trace.Tracer
}

// TraceOption configures a TraceRecorder.
type TraceOption func(*TraceRecorder)

// WithTracerProvider overrides the global tracer provider; tests pass
// an sdk provider with an in-memory exporter here.
func WithTracerProvider(tp trace.TracerProvider) TraceOption {
	return func(t *TraceRecorder) {
		t.tracer = tp.Tracer(tracerName)
	}
}

// NewTraceRecorder creates a recorder using the global otel tracer
// provider unless overridden.
func NewTraceRecorder(opts ...TraceOption) *TraceRecorder {
	t := &TraceRecorder{tracer: otel.Tracer(tracerName)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TraceRecorder) OnRequestStart(ctx context.Context, s *state.State) context.Context {
	req, err := state.Borrow[state.Request](s)
	if err != nil {
		return ctx
	}

	ctx, span := t.tracer.Start(ctx, req.Method, trace.WithSpanKind(trace.SpanKindServer))
	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.target", req.Path),
		attribute.String("http.host", req.Host),
		attribute.String("request.id", state.RequestID(s)),
	)
	return ctx
}

func (t *TraceRecorder) OnRequestEnd(ctx context.Context, s *state.State, res *handler.Response, err error, elapsed time.Duration) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	if ri, riErr := state.Borrow[dispatch.RouteInfo](s); riErr == nil {
		span.SetName(ri.Method + " " + ri.Pattern)
		span.SetAttributes(attribute.String("http.route", ri.Pattern))
	}
	span.SetAttributes(attribute.Int("http.status_code", res.Status))

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case res.Status >= 500:
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", res.Status))
	default:
		span.SetStatus(codes.Ok, "")
	}
}

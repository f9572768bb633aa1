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

// Package dispatch executes matched routes: it seeds request state,
// concatenates the route's pipeline chains, runs the onion around the
// handler, traps faults, and applies finalizers.
//
// Every request yields a well-formed response. Routing misses resolve
// to 404/405 before any pipeline runs, extraction failures to 400,
// trapped faults and panics to 500, and observed cancellation to 499
// (or 504 on deadline). Finalizers run in reverse registration order on
// every path, including the failure paths, so bookkeeping such as
// request-id headers survives aborts.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/pipeline"
	"rivaas.dev/core/router"
	"rivaas.dev/core/state"
)

// StatusClientClosedRequest is reported when the surrounding runtime
// cancels a request mid-flight. 499 follows the nginx convention; no
// client usually sees it, but recorders and access logs do.
const StatusClientClosedRequest = 499

// Dispatcher joins a frozen route tree with a frozen pipeline set.
//
// Thread safety: immutable after New; one Dispatcher serves all
// concurrent requests without locking. All per-request mutation lives
// in the State created inside Dispatch.
type Dispatcher struct {
	router     *router.Router
	set        *pipeline.Set
	finalizers []Finalizer
	recorder   Recorder
	logger     *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithFinalizers appends finalizers. They run after the chain completes
// in reverse registration order, on success and failure paths alike.
func WithFinalizers(f ...Finalizer) Option {
	return func(d *Dispatcher) {
		d.finalizers = append(d.finalizers, f...)
	}
}

// WithRecorder installs an observability recorder.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = r
	}
}

// WithLogger sets the base logger. Each request derives a child logger
// carrying the request id, stored in State for handlers and middleware.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// New creates a Dispatcher over a frozen router and pipeline set.
// Logging defaults to discard; install WithLogger to see faults.
func New(rt *router.Router, set *pipeline.Set, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		router: rt,
		set:    set,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch resolves and executes one request. It never returns nil and
// never panics: all faults are converted to responses here, at the
// outermost boundary.
func (d *Dispatcher) Dispatch(ctx context.Context, req *http.Request) *handler.Response {
	started := time.Now()
	s := state.New()
	state.Put(s, startedAt(started))
	state.Put(s, state.FromHTTP(req))

	id := uuid.NewString()
	state.SetRequestID(s, id)
	logger := d.logger.With(slog.String("request_id", id))
	state.Put(s, logger)

	if d.recorder != nil {
		ctx = d.recorder.OnRequestStart(ctx, s)
	}

	res, err := d.process(ctx, req, s)
	if res == nil {
		res = d.faultResponse(ctx, err, logger)
	}

	for i := len(d.finalizers) - 1; i >= 0; i-- {
		if out := d.finalizers[i].Finalize(ctx, s, res, err); out != nil {
			res = out
		}
	}

	if d.recorder != nil {
		d.recorder.OnRequestEnd(ctx, s, res, err, time.Since(started))
	}
	return res
}

func (d *Dispatcher) process(ctx context.Context, req *http.Request, s *state.State) (*handler.Response, error) {
	m := d.router.Match(req.Method, req.URL.Path)
	switch m.Outcome {
	case router.OutcomeNoMatch:
		return handler.NotFound(), nil
	case router.OutcomeNoVerb:
		return handler.MethodNotAllowed(m.Allow), nil
	}

	route := m.Route
	state.Put(s, m.Params)
	state.Put(s, RouteInfo{Pattern: route.Pattern(), Method: req.Method})

	if ex := route.Extractor(); ex != nil {
		if err := ex.Extract(s, m.Params, req.URL.Query()); err != nil {
			var ee *router.ExtractionError
			if errors.As(err, &ee) {
				return handler.BadRequest(ee.Error()), nil
			}
			return nil, err
		}
	}

	var chain []pipeline.Middleware
	for _, h := range route.Chains() {
		chain = append(chain, d.set.Pipeline(h).Chain()...)
	}
	return d.run(ctx, s, chain, route.Handler())
}

// run is the fault boundary: a panic anywhere in the chain or handler
// surfaces as a *PanicError instead of unwinding past the dispatcher.
func (d *Dispatcher) run(ctx context.Context, s *state.State, chain []pipeline.Middleware, h handler.Handler) (res *handler.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return pipeline.Run(ctx, s, chain, h.Handle)
}

func (d *Dispatcher) faultResponse(ctx context.Context, err error, logger *slog.Logger) *handler.Response {
	switch {
	case errors.Is(err, context.Canceled):
		logger.WarnContext(ctx, "request cancelled", slog.Any("error", err))
		return handler.Text(StatusClientClosedRequest, "499 client closed request")

	case errors.Is(err, context.DeadlineExceeded):
		logger.WarnContext(ctx, "request deadline exceeded", slog.Any("error", err))
		return handler.Text(http.StatusGatewayTimeout, "504 gateway timeout")

	default:
		var pe *PanicError
		if errors.As(err, &pe) {
			logger.ErrorContext(ctx, "panic trapped",
				slog.Any("panic", pe.Value),
				slog.String("stack", string(pe.Stack)))
		} else {
			logger.ErrorContext(ctx, "handler fault", slog.Any("error", err))
		}
		return handler.InternalServerError()
	}
}

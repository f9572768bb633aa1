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

// Package recovery provides an inline fault boundary: it converts
// panics and error returns from everything downstream of it into 500
// responses at its own position in the chain.
//
// The dispatcher already traps faults at the outermost level; placing
// this middleware inside a chain moves the boundary inward so that
// middleware upstream of it still observe a response on their outbound
// phase instead of an unwinding error.
package recovery

import (
	"context"
	"log/slog"
	"runtime/debug"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/pipeline"
	"rivaas.dev/core/state"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets where trapped faults are logged. Default is the
// request logger from state, falling back to discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// New creates the fault-boundary middleware.
func New(opts ...Option) pipeline.Middleware {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return pipeline.Func(func(ctx context.Context, s *state.State, next pipeline.Next) (res *handler.Response, err error) {
		logger := cfg.logger
		if logger == nil {
			if l, lerr := state.Borrow[*slog.Logger](s); lerr == nil {
				logger = l
			} else {
				logger = slog.New(slog.DiscardHandler)
			}
		}

		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "panic trapped",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
				res, err = handler.InternalServerError(), nil
			}
		}()

		res, err = next(ctx, s)
		if err != nil {
			// Cancellation is not a fault; let the dispatcher map it.
			if ctx.Err() != nil {
				return nil, err
			}
			logger.ErrorContext(ctx, "fault trapped", slog.Any("error", err))
			return handler.InternalServerError(), nil
		}
		return res, nil
	})
}

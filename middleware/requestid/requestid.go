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

// Package requestid provides middleware that adopts a client-supplied
// request id or generates one, replacing the dispatcher's default.
//
// The dispatcher always seeds a generated id before any middleware
// runs; this middleware exists for deployments where an upstream proxy
// assigns ids and they must be preserved end to end.
package requestid

import (
	"context"

	"github.com/google/uuid"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/pipeline"
	"rivaas.dev/core/state"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	headerName    string
	generator     func() string
	allowClientID bool
}

func defaultConfig() *config {
	return &config{
		headerName:    "X-Request-ID",
		generator:     generateUUIDv7,
		allowClientID: true,
	}
}

// UUID v7 is time-ordered and lexicographically sortable (RFC 9562).
func generateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WithHeaderName overrides the header consulted and stamped.
// Default "X-Request-ID".
func WithHeaderName(name string) Option {
	return func(c *config) {
		c.headerName = name
	}
}

// WithGenerator overrides the id generator used when the client did not
// supply one.
func WithGenerator(gen func() string) Option {
	return func(c *config) {
		c.generator = gen
	}
}

// WithAllowClientID controls whether an inbound header value is
// trusted. When false a fresh id is always generated. Default true.
func WithAllowClientID(allow bool) Option {
	return func(c *config) {
		c.allowClientID = allow
	}
}

// New creates the request-id middleware. The resolved id is stored in
// request state and stamped onto the response.
func New(opts ...Option) pipeline.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return pipeline.Func(func(ctx context.Context, s *state.State, next pipeline.Next) (*handler.Response, error) {
		id := ""
		if cfg.allowClientID {
			if req, err := state.Borrow[state.Request](s); err == nil {
				id = req.Header.Get(cfg.headerName)
			}
		}
		if id == "" {
			id = cfg.generator()
		}
		state.SetRequestID(s, id)

		res, err := next(ctx, s)
		if res != nil {
			res.Header.Set(cfg.headerName, id)
		}
		return res, err
	})
}

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

// Package core adapts a dispatch.Dispatcher to net/http: it implements
// http.Handler and owns the HTTP server, including optional h2c,
// server timeouts, and graceful shutdown.
//
// The serving stack is assembled bottom-up from the subpackages:
//
//	bg := bag.NewBuilder()
//	authH := bag.Add(bg, authMiddleware)
//	frozen := bg.Freeze()
//
//	pipes := pipeline.NewSetBuilder()
//	defaultChain := pipes.Add(pipeline.New(frozen, pipeline.HandleFor(authH)))
//	set := pipes.Finalize()
//
//	rb := router.NewBuilder()
//	rb.GET("/widgets/:id", widgetHandler, router.WithChains(defaultChain))
//	rt, err := rb.Freeze()
//	if err != nil {
//	    return err
//	}
//
//	d := dispatch.New(rt, set, dispatch.WithFinalizers(dispatch.XRequestID()))
//	k := core.New(d, core.WithH2C(true))
//	return k.Serve(":8080")
//
// Everything above New is frozen before serving; the Kernel itself
// holds only the server handle, guarded for Shutdown.
package core

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"rivaas.dev/core/config"
	"rivaas.dev/core/dispatch"
	"rivaas.dev/core/handler"
)

// Kernel is the HTTP-facing front of a dispatcher.
type Kernel struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger

	h2c      bool
	timeouts serverTimeouts

	serverMu sync.Mutex
	server   *http.Server
}

type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

func defaultServerTimeouts() serverTimeouts {
	return serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithH2C serves cleartext HTTP/2. Use only in development or behind a
// trusted load balancer.
func WithH2C(enabled bool) Option {
	return func(k *Kernel) {
		k.h2c = enabled
	}
}

// WithServerTimeouts overrides the server timeouts. Defaults: 5s read
// header, 15s read, 30s write, 60s idle.
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(k *Kernel) {
		k.timeouts = serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}

// WithLogger sets the kernel's logger, used for serve lifecycle
// messages. Default discard.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) {
		k.logger = l
	}
}

// WithServerConfig applies a loaded config.ServerConfig: h2c flag and
// timeouts. The listen address still goes to Serve.
func WithServerConfig(sc config.ServerConfig) Option {
	return func(k *Kernel) {
		k.h2c = sc.H2C
		k.timeouts = serverTimeouts{
			readHeader: sc.ReadHeaderTimeout,
			read:       sc.ReadTimeout,
			write:      sc.WriteTimeout,
			idle:       sc.IdleTimeout,
		}
	}
}

// New creates a Kernel over a fully built dispatcher.
func New(d *dispatch.Dispatcher, opts ...Option) *Kernel {
	k := &Kernel{
		dispatcher: d,
		logger:     slog.New(slog.DiscardHandler),
		timeouts:   defaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// ServeHTTP implements http.Handler. The dispatcher guarantees a
// response for every request, so this never writes a bare connection
// error of its own.
func (k *Kernel) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	res := k.dispatcher.Dispatch(req.Context(), req)
	writeResponse(w, res)
}

func writeResponse(w http.ResponseWriter, res *handler.Response) {
	h := w.Header()
	for key, values := range res.Header {
		h[key] = values
	}
	w.WriteHeader(res.Status)
	if len(res.Body) > 0 {
		w.Write(res.Body) //nolint:errcheck // client gone; nothing to do
	}
}

// Shutdown gracefully stops the running server without interrupting
// active connections, following http.Server.Shutdown semantics.
// Returns nil if no server is running.
func (k *Kernel) Shutdown(ctx context.Context) error {
	k.serverMu.Lock()
	srv := k.server
	k.serverMu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

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

package core

import (
	"log/slog"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Serve starts the HTTP server on addr and blocks until it stops.
// With h2c enabled, cleartext HTTP/2 upgrades are accepted.
//
// For graceful shutdown, call Shutdown from another goroutine.
func (k *Kernel) Serve(addr string) error {
	h := http.Handler(k)
	if k.h2c {
		h = h2c.NewHandler(h, &http2.Server{})
		k.logger.Warn("h2c enabled; use only in dev or behind a trusted LB")
	}

	srv := k.newServer(addr, h)
	k.logger.Info("serving", slog.String("addr", addr), slog.Bool("h2c", k.h2c))
	return srv.ListenAndServe()
}

// ServeTLS starts the HTTPS server on addr and blocks until it stops.
// HTTP/2 is negotiated via ALPN by the standard library.
func (k *Kernel) ServeTLS(addr, certFile, keyFile string) error {
	srv := k.newServer(addr, k)
	k.logger.Info("serving tls", slog.String("addr", addr))
	return srv.ListenAndServeTLS(certFile, keyFile)
}

func (k *Kernel) newServer(addr string, h http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: k.timeouts.readHeader,
		ReadTimeout:       k.timeouts.read,
		WriteTimeout:      k.timeouts.write,
		IdleTimeout:       k.timeouts.idle,
	}

	k.serverMu.Lock()
	k.server = srv
	k.serverMu.Unlock()
	return srv
}

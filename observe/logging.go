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
	"log/slog"
	"time"

	"rivaas.dev/core/dispatch"
	"rivaas.dev/core/handler"
	"rivaas.dev/core/state"
)

// LogRecorder writes one access-log line per request. Ordinary requests
// log at Info; trapped faults log at Error with the fault attached.
type LogRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder creates an access-log recorder. A nil logger falls
// back to slog.Default.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRecorder{logger: logger}
}

func (l *LogRecorder) OnRequestStart(ctx context.Context, s *state.State) context.Context {
	return ctx
}

func (l *LogRecorder) OnRequestEnd(ctx context.Context, s *state.State, res *handler.Response, err error, elapsed time.Duration) {
	attrs := []slog.Attr{
		slog.Int("status", res.Status),
		slog.Duration("elapsed", elapsed),
		slog.String("request_id", state.RequestID(s)),
	}
	if req, reqErr := state.Borrow[state.Request](s); reqErr == nil {
		attrs = append(attrs,
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.String("remote", req.RemoteAddr),
		)
	}
	if ri, riErr := state.Borrow[dispatch.RouteInfo](s); riErr == nil {
		attrs = append(attrs, slog.String("route", ri.Pattern))
	}

	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.Any("error", err))
	}
	l.logger.LogAttrs(ctx, level, "request", attrs...)
}

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
	"strconv"
	"time"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/state"
)

// Finalizer post-processes the response after the chain has completed,
// whether it completed normally, short-circuited, or aborted. err is
// the fault that produced res, nil on ordinary completion.
//
// A finalizer may return a replacement response or nil to keep the
// current one. It cannot resume any aborted middleware.
type Finalizer interface {
	Finalize(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response
}

// FinalizerFunc adapts an ordinary function to the Finalizer interface.
type FinalizerFunc func(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response

// Finalize invokes f.
func (f FinalizerFunc) Finalize(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response {
	return f(ctx, s, res, err)
}

// startedAt is the State entry recording when Dispatch began.
type startedAt time.Time

// StartTime returns when the dispatcher began processing the request.
func StartTime(s *state.State) (time.Time, bool) {
	v, err := state.Borrow[startedAt](s)
	if err != nil {
		return time.Time{}, false
	}
	return time.Time(v), true
}

// XRequestID returns a finalizer stamping the generated request id onto
// the response as X-Request-ID.
func XRequestID() Finalizer {
	return FinalizerFunc(func(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response {
		if id := state.RequestID(s); id != "" {
			res.Header.Set("X-Request-ID", id)
		}
		return nil
	})
}

// XRuntimeMicroseconds returns a finalizer reporting elapsed processing
// time as an X-Runtime-Microseconds response header.
func XRuntimeMicroseconds() Finalizer {
	return FinalizerFunc(func(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response {
		started, ok := StartTime(s)
		if !ok {
			return nil
		}
		res.Header.Set("X-Runtime-Microseconds", strconv.FormatInt(time.Since(started).Microseconds(), 10))
		return nil
	})
}

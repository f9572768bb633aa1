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

// Package timeout provides middleware that bounds the time the rest of
// the chain may take. On expiry the derived context is cancelled; the
// chain's own cancellation checks stop further stages and the timeout
// surfaces as a 504 from the dispatcher.
package timeout

import (
	"context"
	"time"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/pipeline"
	"rivaas.dev/core/state"
)

// New creates middleware that runs its downstream chain under a
// deadline of d. A non-positive d is a configuration error and panics
// at build time.
func New(d time.Duration) pipeline.Middleware {
	if d <= 0 {
		panic("timeout: non-positive duration")
	}

	return pipeline.Func(func(ctx context.Context, s *state.State, next pipeline.Next) (*handler.Response, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next(ctx, s)
	})
}

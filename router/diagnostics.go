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

package router

// DiagnosticEvent represents a build-time routing anomaly that is legal
// but probably unintended, such as re-registering a verb or adding a
// regex route that an earlier catch-all sibling makes unreachable.
//
// Diagnostics are optional: the builder behaves identically whether or
// not a handler is installed. They exist so configuration mistakes are
// visible at startup instead of as silent 404s in production.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagVerbOverride reports a verb registered twice for one pattern;
	// the later registration wins.
	DiagVerbOverride DiagnosticKind = "verb_override"

	// DiagShadowedRoute reports a regex route that can never match
	// because an earlier sibling pattern accepts every segment.
	DiagShadowedRoute DiagnosticKind = "shadowed_route"
)

// DiagnosticHandler receives diagnostic events during tree construction.
// Implementations may log, collect for tests, or ignore them.
//
// Example with logging:
//
//	diag := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	b := router.NewBuilder(router.WithDiagnostics(diag))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

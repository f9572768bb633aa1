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

import (
	"slices"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/pipeline"
)

// Route is one registered endpoint: a verb set, the pattern it was
// registered under, the pipeline chains to run around its handler, and
// an optional extractor for typed parameter binding.
//
// Thread safety: immutable after Freeze and safe for concurrent reads.
type Route struct {
	methods   []string
	pattern   string
	segments  []segment
	chains    []pipeline.ChainHandle
	extractor Extractor
	h         handler.Handler
}

// Methods returns the verbs this route still accepts. A verb claimed by
// a later registration for the same pattern is no longer listed here.
func (r *Route) Methods() []string {
	return slices.Clone(r.methods)
}

// Pattern returns the full pattern the route was registered under,
// including any enclosing scope prefixes.
func (r *Route) Pattern() string {
	return r.pattern
}

// Chains returns the route's pipeline chain handles in execution order:
// scope chains outermost, route-level chains innermost.
func (r *Route) Chains() []pipeline.ChainHandle {
	return slices.Clone(r.chains)
}

// Handler returns the terminal handler.
func (r *Route) Handler() handler.Handler {
	return r.h
}

// Extractor returns the route's extractor, or nil when the route binds
// raw parameters only.
func (r *Route) Extractor() Extractor {
	return r.extractor
}

func (r *Route) acceptsMethod(method string) bool {
	return slices.Contains(r.methods, method)
}

// dropMethod removes a verb claimed by a later registration.
func (r *Route) dropMethod(method string) {
	r.methods = slices.DeleteFunc(r.methods, func(m string) bool {
		return m == method
	})
}

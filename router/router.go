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
	"strings"
)

// Outcome classifies the result of a match attempt.
type Outcome uint8

const (
	// OutcomeNoMatch means no tree path consumes the full request path.
	// Dispatch turns this into a 404.
	OutcomeNoMatch Outcome = iota

	// OutcomeMatched means a route accepted both the path and the verb.
	OutcomeMatched

	// OutcomeNoVerb means the path matched a leaf but no route there
	// accepts the request's verb. Dispatch turns this into a 405 with
	// an Allow header listing the verbs that would have matched.
	OutcomeNoVerb
)

// Match is the result of Router.Match.
type Match struct {
	Outcome Outcome

	// Route and Params are set when Outcome is OutcomeMatched.
	Route  *Route
	Params Params

	// Allow is the sorted union of verbs accepted at the matched leaf,
	// set when Outcome is OutcomeNoVerb.
	Allow []string
}

// Router is the frozen segment tree. It is produced by Builder.Freeze,
// never mutated afterwards, and shared read-only across all concurrent
// request tasks; no locking is required because no mutation path exists.
type Router struct {
	root   *node
	routes []*Route
}

// Match resolves a method and path against the tree. The method is
// compared case-sensitively and is expected in its canonical upper-case
// form, as net/http delivers it.
func (r *Router) Match(method, path string) Match {
	leaf, caps, ok := r.root.match(tokenize(path), nil)
	if !ok {
		return Match{Outcome: OutcomeNoMatch}
	}

	for _, route := range leaf.routes {
		if route.acceptsMethod(method) {
			return Match{
				Outcome: OutcomeMatched,
				Route:   route,
				Params:  newParams(caps),
			}
		}
	}

	allow := make([]string, 0, len(leaf.routes))
	for _, route := range leaf.routes {
		for _, m := range route.methods {
			if !slices.Contains(allow, m) {
				allow = append(allow, m)
			}
		}
	}
	slices.Sort(allow)
	return Match{Outcome: OutcomeNoVerb, Allow: allow}
}

// Routes returns every route still reachable in the tree, in
// registration order.
func (r *Router) Routes() []*Route {
	out := make([]*Route, 0, len(r.routes))
	for _, route := range r.routes {
		if len(route.methods) > 0 {
			out = append(out, route)
		}
	}
	return out
}

// joinPattern composes a scope prefix with a route pattern, tolerating
// missing or doubled slashes at the seam.
func joinPattern(prefix, pattern string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	pattern = strings.TrimPrefix(pattern, "/")
	if pattern == "" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	return prefix + "/" + pattern
}

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
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/pipeline"
)

// RouteOption configures a single registration or a scope.
type RouteOption func(*routeConfig)

type routeConfig struct {
	chains    []pipeline.ChainHandle
	extractor Extractor
}

// WithChains appends pipeline chains to run around the handler, after
// any chains inherited from enclosing scopes.
func WithChains(handles ...pipeline.ChainHandle) RouteOption {
	return func(rc *routeConfig) {
		rc.chains = append(rc.chains, handles...)
	}
}

// WithExtractor sets the extractor that binds typed path and query
// values into request state before the pipeline runs.
func WithExtractor(e Extractor) RouteOption {
	return func(rc *routeConfig) {
		rc.extractor = e
	}
}

// Builder accumulates route registrations and produces a frozen Router.
// Scopes share the builder's tree and error list, so registration order
// is global across scopes. Not safe for concurrent use.
//
// Pattern errors do not abort registration; they are collected and
// reported together by Freeze, so a caller sees every bad pattern in
// one pass instead of fixing them one at a time.
type Builder struct {
	prefix string
	chains []pipeline.ChainHandle
	shared *builderShared
}

type builderShared struct {
	root   *node
	routes []*Route
	errs   []error
	diag   DiagnosticHandler
	frozen bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*builderShared)

// WithDiagnostics installs a handler for build-time diagnostic events
// such as verb overrides and shadowed regex routes.
func WithDiagnostics(h DiagnosticHandler) BuilderOption {
	return func(bs *builderShared) {
		bs.diag = h
	}
}

// NewBuilder creates an empty route tree builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	shared := &builderShared{root: &node{}}
	for _, opt := range opts {
		opt(shared)
	}
	return &Builder{shared: shared}
}

// Scope runs fn against a child builder whose registrations are
// prefixed with prefix and wrapped in the scope's chains (outermost
// first). Scopes nest; each level composes onto its parent.
func (b *Builder) Scope(prefix string, fn func(*Builder), opts ...RouteOption) {
	if b.shared.frozen {
		panic(ErrFrozen)
	}
	var rc routeConfig
	for _, opt := range opts {
		opt(&rc)
	}

	child := &Builder{
		prefix: joinPattern(b.prefix, prefix),
		chains: slices.Concat(b.chains, rc.chains),
		shared: b.shared,
	}
	fn(child)
}

// Register adds a route for the given verbs. The pattern is composed
// with the enclosing scope prefixes; verbs are canonicalized to upper
// case. Panics with ErrFrozen after Freeze.
func (b *Builder) Register(methods []string, pattern string, h handler.Handler, opts ...RouteOption) {
	if b.shared.frozen {
		panic(ErrFrozen)
	}

	full := joinPattern(b.prefix, pattern)
	if len(methods) == 0 {
		b.fail(full, ErrNoMethods)
		return
	}
	if h == nil {
		b.fail(full, ErrNilHandler)
		return
	}

	var rc routeConfig
	for _, opt := range opts {
		opt(&rc)
	}

	segs, err := parsePattern(full)
	if err != nil {
		b.fail(full, err)
		return
	}

	canonical := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(m)
		if !slices.Contains(canonical, m) {
			canonical = append(canonical, m)
		}
	}

	route := &Route{
		methods:   canonical,
		pattern:   full,
		segments:  segs,
		chains:    slices.Concat(b.chains, rc.chains),
		extractor: rc.extractor,
		h:         h,
	}

	if err := b.shared.root.insert(route, segs, b.shared.diag); err != nil {
		b.fail(full, err)
		return
	}
	b.shared.routes = append(b.shared.routes, route)
}

// GET registers a route for GET.
func (b *Builder) GET(pattern string, h handler.Handler, opts ...RouteOption) {
	b.Register([]string{http.MethodGet}, pattern, h, opts...)
}

// POST registers a route for POST.
func (b *Builder) POST(pattern string, h handler.Handler, opts ...RouteOption) {
	b.Register([]string{http.MethodPost}, pattern, h, opts...)
}

// PUT registers a route for PUT.
func (b *Builder) PUT(pattern string, h handler.Handler, opts ...RouteOption) {
	b.Register([]string{http.MethodPut}, pattern, h, opts...)
}

// PATCH registers a route for PATCH.
func (b *Builder) PATCH(pattern string, h handler.Handler, opts ...RouteOption) {
	b.Register([]string{http.MethodPatch}, pattern, h, opts...)
}

// DELETE registers a route for DELETE.
func (b *Builder) DELETE(pattern string, h handler.Handler, opts ...RouteOption) {
	b.Register([]string{http.MethodDelete}, pattern, h, opts...)
}

// HEAD registers a route for HEAD.
func (b *Builder) HEAD(pattern string, h handler.Handler, opts ...RouteOption) {
	b.Register([]string{http.MethodHead}, pattern, h, opts...)
}

// OPTIONS registers a route for OPTIONS.
func (b *Builder) OPTIONS(pattern string, h handler.Handler, opts ...RouteOption) {
	b.Register([]string{http.MethodOptions}, pattern, h, opts...)
}

// Freeze performs the irrevocable transition to an immutable Router.
// If any registration failed, Freeze returns the collected errors
// joined together and no Router; a partially valid tree is never
// served.
func (b *Builder) Freeze() (*Router, error) {
	if b.shared.frozen {
		panic(ErrFrozen)
	}
	b.shared.frozen = true

	if len(b.shared.errs) > 0 {
		return nil, errors.Join(b.shared.errs...)
	}
	return &Router{root: b.shared.root, routes: b.shared.routes}, nil
}

func (b *Builder) fail(pattern string, err error) {
	b.shared.errs = append(b.shared.errs, fmt.Errorf("route %q: %w", pattern, err))
}

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

import "slices"

// node is one level of the segment tree. Children are partitioned by
// matcher kind so lookup tries them in specificity order: literals by
// map key, regex children in registration order, then the single
// dynamic child, then the single glob child.
type node struct {
	literals map[string]*node
	regexes  []*regexChild
	dynamic  *paramChild
	glob     *paramChild
	routes   []*Route
}

type regexChild struct {
	name  string
	raw   string
	match func(string) bool
	child *node
}

type paramChild struct {
	name  string
	child *node
}

// universal reports whether a regex source trivially matches every
// candidate segment. Full subsumption between arbitrary patterns is not
// decidable cheaply, so shadow detection covers only these provable
// cases.
func universal(raw string) bool {
	return raw == ".*" || raw == ".+"
}

// insert descends the tree along the route's segments, creating child
// nodes as needed, and attaches the route at the leaf. Structural
// conflicts surface as errors; verb overlaps at the leaf are resolved
// by last-registration-wins and reported through diag.
func (n *node) insert(route *Route, segs []segment, diag DiagnosticHandler) error {
	if len(segs) == 0 {
		n.attach(route, diag)
		return nil
	}

	head, rest := segs[0], segs[1:]
	switch head.kind {
	case segLiteral:
		if n.literals == nil {
			n.literals = make(map[string]*node)
		}
		child := n.literals[head.literal]
		if child == nil {
			child = &node{}
			n.literals[head.literal] = child
		}
		return child.insert(route, rest, diag)

	case segRegex:
		for _, rc := range n.regexes {
			// Identical sources share one child so verb policy can
			// apply across registrations of the same constraint.
			if rc.raw == head.raw {
				return rc.child.insert(route, rest, diag)
			}
			if universal(rc.raw) && diag != nil {
				diag.OnDiagnostic(DiagnosticEvent{
					Kind:    DiagShadowedRoute,
					Message: "regex segment is unreachable behind an earlier catch-all sibling",
					Fields: map[string]any{
						"route":     route.pattern,
						"shadowing": rc.raw,
						"shadowed":  head.raw,
					},
				})
			}
		}
		rc := &regexChild{
			name:  head.name,
			raw:   head.raw,
			match: head.pattern.MatchString,
			child: &node{},
		}
		n.regexes = append(n.regexes, rc)
		return rc.child.insert(route, rest, diag)

	case segDynamic:
		if n.dynamic == nil {
			n.dynamic = &paramChild{name: head.name, child: &node{}}
		} else if n.dynamic.name != head.name {
			return ErrParamConflict
		}
		return n.dynamic.child.insert(route, rest, diag)

	case segGlob:
		if n.glob == nil {
			n.glob = &paramChild{name: head.name, child: &node{}}
		} else if n.glob.name != head.name {
			return ErrParamConflict
		}
		// Parsing guarantees the glob is terminal.
		n.glob.child.attach(route, diag)
		return nil
	}
	return nil
}

// attach adds a terminal route, stripping any of its verbs from earlier
// routes at the same leaf. Routes left with no verbs are pruned.
func (n *node) attach(route *Route, diag DiagnosticHandler) {
	for _, existing := range n.routes {
		for _, m := range route.methods {
			if !existing.acceptsMethod(m) {
				continue
			}
			existing.dropMethod(m)
			if diag != nil {
				diag.OnDiagnostic(DiagnosticEvent{
					Kind:    DiagVerbOverride,
					Message: "verb re-registered for pattern; last registration wins",
					Fields: map[string]any{
						"route":  route.pattern,
						"method": m,
					},
				})
			}
		}
	}
	n.routes = slices.DeleteFunc(n.routes, func(r *Route) bool {
		return len(r.methods) == 0
	})
	n.routes = append(n.routes, route)
}

// match walks the tree consuming one request segment per level and
// returns the leaf whose routes terminate the path, together with the
// captures accumulated on the way down. Failed branches backtrack to
// the next alternative at the nearest ancestor.
func (n *node) match(segs []string, caps []capture) (*node, []capture, bool) {
	if len(segs) == 0 {
		if len(n.routes) > 0 {
			return n, caps, true
		}
		// A glob at the end of the pattern matches zero segments.
		if n.glob != nil && len(n.glob.child.routes) > 0 {
			caps = append(caps, capture{name: n.glob.name, parts: []string{}, glob: true})
			return n.glob.child, caps, true
		}
		return nil, nil, false
	}

	head, rest := segs[0], segs[1:]

	if child := n.literals[head]; child != nil {
		if leaf, out, ok := child.match(rest, caps); ok {
			return leaf, out, true
		}
	}

	for _, rc := range n.regexes {
		if !rc.match(head) {
			continue
		}
		if leaf, out, ok := rc.child.match(rest, append(caps, capture{name: rc.name, value: head})); ok {
			return leaf, out, true
		}
	}

	if n.dynamic != nil && head != "" {
		if leaf, out, ok := n.dynamic.child.match(rest, append(caps, capture{name: n.dynamic.name, value: head})); ok {
			return leaf, out, true
		}
	}

	if n.glob != nil && len(n.glob.child.routes) > 0 {
		caps = append(caps, capture{name: n.glob.name, parts: slices.Clone(segs), glob: true})
		return n.glob.child, caps, true
	}

	return nil, nil, false
}

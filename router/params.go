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

// Params holds the path captures assembled during a successful match.
// Dynamic and regex segments bind a single value; a glob segment binds
// the list of segments it consumed, which may be empty.
//
// A Params value is built once per match and read-only afterwards.
type Params struct {
	single map[string]string
	globs  map[string][]string
}

// capture is one binding produced during traversal, converted into
// Params once a leaf is reached.
type capture struct {
	name  string
	value string
	parts []string
	glob  bool
}

func newParams(caps []capture) Params {
	p := Params{}
	for _, c := range caps {
		if c.glob {
			if p.globs == nil {
				p.globs = make(map[string][]string)
			}
			p.globs[c.name] = c.parts
			continue
		}
		if p.single == nil {
			p.single = make(map[string]string)
		}
		p.single[c.name] = c.value
	}
	return p
}

// Get returns the single-segment capture bound under name.
func (p Params) Get(name string) (string, bool) {
	v, ok := p.single[name]
	return v, ok
}

// Glob returns the glob capture bound under name. The slice may be
// empty when the glob matched zero segments; ok still reports true.
func (p Params) Glob(name string) ([]string, bool) {
	v, ok := p.globs[name]
	return v, ok
}

// Has reports whether any capture, single or glob, exists under name.
func (p Params) Has(name string) bool {
	if _, ok := p.single[name]; ok {
		return true
	}
	_, ok := p.globs[name]
	return ok
}

// Len reports the total number of captures.
func (p Params) Len() int {
	return len(p.single) + len(p.globs)
}

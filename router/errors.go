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

import "errors"

var (
	// ErrFrozen indicates that a Builder was used after Freeze.
	ErrFrozen = errors.New("router: builder is frozen")

	// ErrNoMethods indicates a registration with an empty verb set.
	ErrNoMethods = errors.New("router: route has no methods")

	// ErrNilHandler indicates a registration without a handler.
	ErrNilHandler = errors.New("router: route has nil handler")

	// ErrEmptySegment indicates a pattern containing an empty interior
	// segment, e.g. "/a//b".
	ErrEmptySegment = errors.New("router: empty segment in pattern")

	// ErrEmptyParamName indicates a ":" or "*" segment without a name.
	ErrEmptyParamName = errors.New("router: empty parameter name")

	// ErrGlobNotLast indicates a "*name" segment followed by further
	// segments; globs consume the rest of the path and must be terminal.
	ErrGlobNotLast = errors.New("router: glob segment must be the final segment")

	// ErrParamConflict indicates two registrations placing differently
	// named dynamic (or glob) captures at the same tree position. A node
	// holds at most one dynamic and one glob child, so the names must
	// agree.
	ErrParamConflict = errors.New("router: conflicting parameter name at same position")
)

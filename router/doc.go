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

// Package router matches request paths against a segment tree built once
// during configuration and frozen before serving.
//
// Patterns are slash-separated segment sequences. Four segment forms exist:
//
//   - literal text ("widgets") matches exactly that segment,
//   - ":name" matches any single non-empty segment and binds it,
//   - ":name|<regex>" matches a single segment against an anchored regular
//     expression and binds it,
//   - "*name" matches the remaining suffix of the path, zero or more
//     segments, and must be the final segment of its pattern.
//
// At every tree node candidates are tried most-specific first: literal,
// then regex children in registration order, then the dynamic child, then
// the glob child. Traversal backtracks across those alternatives, so a
// more specific branch that dead-ends further down never hides a valid
// less specific one. Each node carries at most one dynamic and one glob
// child, which bounds the number of alternatives per level.
//
// Routes are registered through a Builder, optionally inside nested
// scopes that compose path prefixes and pipeline chains. Freeze performs
// the irrevocable transition to an immutable Router that is shared
// read-only across all concurrent requests.
package router

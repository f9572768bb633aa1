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
	"fmt"
	"regexp"
	"strings"
)

type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segRegex
	segDynamic
	segGlob
)

// segment is one parsed element of a route pattern.
type segment struct {
	kind    segmentKind
	literal string         // segLiteral only
	name    string         // capture name for regex/dynamic/glob
	raw     string         // regex source as written in the pattern
	pattern *regexp.Regexp // compiled, anchored; segRegex only
}

// tokenize splits a path into its segments, dropping the leading slash
// and a single trailing empty segment so "/a/b" and "/a/b/" address the
// same route. Interior empty segments are preserved; they match nothing
// and the request falls through to NoMatch.
func tokenize(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	segs := strings.Split(path, "/")
	if segs[len(segs)-1] == "" {
		segs = segs[:len(segs)-1]
	}
	return segs
}

// parsePattern turns a route pattern into its segment sequence. The
// grammar is validated here so every failure is a construction-time
// error; matching never re-parses.
func parsePattern(pattern string) ([]segment, error) {
	raw := tokenize(pattern)
	out := make([]segment, 0, len(raw))

	for i, text := range raw {
		switch {
		case text == "":
			return nil, ErrEmptySegment

		case strings.HasPrefix(text, "*"):
			name := text[1:]
			if name == "" {
				return nil, ErrEmptyParamName
			}
			if i != len(raw)-1 {
				return nil, ErrGlobNotLast
			}
			out = append(out, segment{kind: segGlob, name: name})

		case strings.HasPrefix(text, ":"):
			name, expr, constrained := strings.Cut(text[1:], "|")
			if name == "" {
				return nil, ErrEmptyParamName
			}
			if !constrained {
				out = append(out, segment{kind: segDynamic, name: name})
				continue
			}
			// Anchor so the expression must cover the whole segment,
			// not merely occur within it.
			compiled, err := regexp.Compile("^(?:" + expr + ")$")
			if err != nil {
				return nil, fmt.Errorf("router: segment %q: %w", text, err)
			}
			out = append(out, segment{kind: segRegex, name: name, raw: expr, pattern: compiled})

		default:
			out = append(out, segment{kind: segLiteral, literal: text})
		}
	}

	return out, nil
}

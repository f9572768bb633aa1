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

package pipeline

import "sync/atomic"

var nextSetID atomic.Uint64

// ChainHandle is an opaque reference to a Pipeline within one Set. Routes
// carry chain handles rather than pipelines so that the router and the
// pipeline registry can be built independently and joined at dispatch.
//
// A handle is only meaningful for the Set finalized from the SetBuilder
// that issued it; presenting it elsewhere panics with ErrForeignChain.
type ChainHandle struct {
	index int
	owner uint64
}

// SetBuilder accumulates pipelines during the configuration phase,
// mirroring the bag's add-then-freeze discipline. Not safe for concurrent
// use.
type SetBuilder struct {
	pipelines []*Pipeline
	owner     uint64
	finalized bool
}

// NewSetBuilder creates an empty SetBuilder with a fresh identity.
func NewSetBuilder() *SetBuilder {
	return &SetBuilder{owner: nextSetID.Add(1)}
}

// Add registers a pipeline and returns its chain handle. Panics with
// ErrSetFinalized after Finalize.
func (sb *SetBuilder) Add(p *Pipeline) ChainHandle {
	if sb.finalized {
		panic(ErrSetFinalized)
	}
	sb.pipelines = append(sb.pipelines, p)
	return ChainHandle{index: len(sb.pipelines) - 1, owner: sb.owner}
}

// Finalize performs the irrevocable transition to a read-only Set. No
// further chains may be added afterwards.
func (sb *SetBuilder) Finalize() *Set {
	if sb.finalized {
		panic(ErrSetFinalized)
	}
	sb.finalized = true

	pipelines := make([]*Pipeline, len(sb.pipelines))
	copy(pipelines, sb.pipelines)

	return &Set{pipelines: pipelines, owner: sb.owner}
}

// Set is the frozen pipeline registry shared read-only across all
// concurrent request tasks. No locks are needed because no mutation path
// exists after Finalize.
type Set struct {
	pipelines []*Pipeline
	owner     uint64
}

// Pipeline resolves a chain handle to its frozen pipeline. Panics with
// ErrForeignChain if the handle was issued by a different SetBuilder.
func (s *Set) Pipeline(h ChainHandle) *Pipeline {
	if h.owner != s.owner {
		panic(ErrForeignChain)
	}
	return s.pipelines[h.index]
}

// Len reports the number of registered pipelines.
func (s *Set) Len() int {
	return len(s.pipelines)
}

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

// Package bag provides an add-only, type-indexed heterogeneous store.
//
// Values of arbitrary types are appended to a Builder during a single-owner
// configuration phase. Each Add returns a typed Handle which recovers the
// stored value, with its exact static type, from the Bag produced by Freeze.
//
// Lifecycle:
//
//	b := bag.NewBuilder()
//	h1 := bag.Add(b, &SessionStore{})
//	h2 := bag.Add(b, RateLimiter{Burst: 10})
//	frozen := b.Freeze()
//
//	sessions := bag.Borrow(frozen, h1) // *SessionStore, no type assertion
//
// After Freeze the Bag is immutable and safe for concurrent use by any
// number of readers without synchronization; there is no mutation path.
//
// A Handle's type parameter ties retrieval to the stored type at compile
// time: presenting a Handle[A] where a Handle[B] is expected does not
// compile. Store lineage, which Rust-style type-level indices would also
// enforce statically, is checked at construction time instead: borrowing
// with a handle minted by a different Builder panics with ErrForeignHandle.
// This constant-time identity check is the documented trade-off for not
// having type-level naturals in Go.
package bag

import "sync/atomic"

// nextStoreID produces process-unique store identities. Pointer identity of
// the builder is not used because builders are garbage collected and their
// addresses can be reused.
var nextStoreID atomic.Uint64

// Handle is an opaque, typed reference to a slot in a Bag. The zero Handle
// is invalid and belongs to no store.
type Handle[T any] struct {
	index int
	owner uint64
}

// Builder accumulates values during the build phase. It is not safe for
// concurrent use; the intended discipline is a single goroutine threading
// the builder through successive Add calls, mirroring the linear
// "add consumes the store" model. Freeze ends the build phase.
type Builder struct {
	slots  []any
	owner  uint64
	frozen bool
}

// NewBuilder creates an empty Builder with a fresh store identity.
func NewBuilder() *Builder {
	return &Builder{owner: nextStoreID.Add(1)}
}

// Add appends a value to the builder and returns a Handle for it.
// The handle is valid for the Bag produced by this builder's Freeze.
//
// Add panics with ErrFrozen if the builder has already been frozen; the
// store only grows during the build phase and never afterwards.
func Add[T any](b *Builder, value T) Handle[T] {
	if b.frozen {
		panic(ErrFrozen)
	}
	b.slots = append(b.slots, value)
	return Handle[T]{index: len(b.slots) - 1, owner: b.owner}
}

// Len reports the number of values added so far.
func (b *Builder) Len() int {
	return len(b.slots)
}

// Freeze performs the irrevocable transition to a read-only Bag. The
// builder must not be used again; further Add or Freeze calls panic with
// ErrFrozen.
func (b *Builder) Freeze() *Bag {
	if b.frozen {
		panic(ErrFrozen)
	}
	b.frozen = true

	// Copy so the Bag's backing array can never alias a slice the caller
	// might still hold.
	slots := make([]any, len(b.slots))
	copy(slots, b.slots)

	return &Bag{slots: slots, owner: b.owner}
}

// Bag is the frozen, immutable snapshot of a Builder.
//
// Thread safety: a Bag has no writers, so Borrow is safe to call
// concurrently from any number of goroutines without locking.
type Bag struct {
	slots []any
	owner uint64
}

// Borrow returns the value previously added under h. The static type is
// carried by the handle, so no caller-visible type check is required.
//
// Borrow cannot fail for a handle minted by this bag's builder: the slot is
// guaranteed to exist and to hold a T by construction. Presenting a handle
// from an unrelated store panics with ErrForeignHandle.
func Borrow[T any](bg *Bag, h Handle[T]) T {
	if h.owner != bg.owner {
		panic(ErrForeignHandle)
	}
	return bg.slots[h.index].(T)
}

// Len reports the number of stored values.
func (bg *Bag) Len() int {
	return len(bg.slots)
}

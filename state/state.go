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

// Package state provides the per-request mutable container used to pass
// extracted values and middleware-injected data to handlers.
//
// State maps a type identity to exactly one live value. Put replaces any
// existing value of the same type; Take and Borrow of an absent type fail
// with *AbsentError rather than a generic fault, so callers can branch on
// "not there yet" without string matching.
//
// ⚠️ THREAD SAFETY: State is NOT thread-safe. A State instance is owned
// exclusively by the single in-flight request that created it. Goroutines
// spawned from a handler must receive copies of the data they need; they
// must not touch the shared State directly.
package state

import "reflect"

// State stores one value per type for the lifetime of a request. The zero
// value is not usable; create instances with New.
type State struct {
	data map[reflect.Type]any
}

// New creates an empty State.
func New() *State {
	return &State{data: make(map[reflect.Type]any, 8)}
}

// Put stores a value, replacing any existing value of the same type.
//
// The value is boxed behind a pointer internally so BorrowMut can hand out
// an addressable reference to the stored copy.
func Put[T any](s *State, value T) {
	s.data[reflect.TypeFor[T]()] = &value
}

// Has reports whether a value of type T is currently stored.
func Has[T any](s *State) bool {
	_, ok := s.data[reflect.TypeFor[T]()]
	return ok
}

// Borrow returns a copy of the stored value of type T.
// Returns *AbsentError if no value of that type is present.
func Borrow[T any](s *State) (T, error) {
	p, err := BorrowMut[T](s)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// BorrowMut returns a pointer to the stored value of type T, allowing
// in-place mutation. The pointer remains valid until the value is replaced
// by Put or removed by Take.
// Returns *AbsentError if no value of that type is present.
func BorrowMut[T any](s *State) (*T, error) {
	key := reflect.TypeFor[T]()
	v, ok := s.data[key]
	if !ok {
		return nil, &AbsentError{Type: key, Op: "borrow"}
	}
	return v.(*T), nil
}

// Take removes the stored value of type T and returns ownership of it.
// Returns *AbsentError if no value of that type is present.
func Take[T any](s *State) (T, error) {
	key := reflect.TypeFor[T]()
	v, ok := s.data[key]
	if !ok {
		var zero T
		return zero, &AbsentError{Type: key, Op: "take"}
	}
	delete(s.data, key)
	return *(v.(*T)), nil
}

// MustBorrow is a convenience for values the caller knows the dispatcher
// has populated (request metadata, path parameters). It panics on absence,
// which indicates a programming error rather than a runtime condition.
func MustBorrow[T any](s *State) T {
	v, err := Borrow[T](s)
	if err != nil {
		panic(err)
	}
	return v
}

// Len reports the number of live values.
func (s *State) Len() int {
	return len(s.data)
}

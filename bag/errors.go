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

package bag

import "errors"

var (
	// ErrFrozen indicates that a Builder was used after Freeze.
	ErrFrozen = errors.New("bag: builder is frozen")

	// ErrForeignHandle indicates that a Handle was presented to a Bag
	// other than the one produced by the Builder that minted it.
	ErrForeignHandle = errors.New("bag: handle belongs to a different store")
)

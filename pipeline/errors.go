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

import "errors"

var (
	// ErrSetFinalized indicates that a SetBuilder was used after Finalize.
	ErrSetFinalized = errors.New("pipeline: set is finalized")

	// ErrForeignChain indicates that a ChainHandle was presented to a Set
	// other than the one finalized from the builder that issued it.
	ErrForeignChain = errors.New("pipeline: chain handle belongs to a different set")
)

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

package state

import (
	"errors"
	"fmt"
	"reflect"
)

// AbsentError reports a Borrow, BorrowMut, or Take against a type that has
// no live value in the State. It is a distinct condition from any other
// fault so callers can detect it with errors.As.
type AbsentError struct {
	Type reflect.Type // The requested type
	Op   string       // "borrow" or "take"
}

func (e *AbsentError) Error() string {
	return fmt.Sprintf("state: %s of absent type %s", e.Op, e.Type)
}

// IsAbsent reports whether err indicates an absent State value.
func IsAbsent(err error) bool {
	var ae *AbsentError
	return errors.As(err, &ae)
}

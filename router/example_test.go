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

package router_test

import (
	"context"
	"fmt"
	"net/http"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/router"
	"rivaas.dev/core/state"
)

func show(name string) handler.Handler {
	return handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		return handler.Text(http.StatusOK, name), nil
	})
}

// ExampleBuilder demonstrates registering routes and matching a path.
func ExampleBuilder() {
	b := router.NewBuilder()
	b.GET("/widgets", show("list"))
	b.GET("/widgets/:id", show("detail"))

	rt, err := b.Freeze()
	if err != nil {
		fmt.Println("build failed:", err)
		return
	}

	m := rt.Match(http.MethodGet, "/widgets/42")
	id, _ := m.Params.Get("id")
	fmt.Println(m.Route.Pattern(), id)
	// Output: /widgets/:id 42
}

// ExampleBuilder_Scope demonstrates prefix composition.
func ExampleBuilder_Scope() {
	b := router.NewBuilder()
	b.Scope("/api/v1", func(v1 *router.Builder) {
		v1.GET("/orders/:id", show("order"))
	})

	rt, err := b.Freeze()
	if err != nil {
		fmt.Println("build failed:", err)
		return
	}

	m := rt.Match(http.MethodGet, "/api/v1/orders/7")
	fmt.Println(m.Route.Pattern())
	// Output: /api/v1/orders/:id
}

// ExampleRouter_Match demonstrates the three match outcomes.
func ExampleRouter_Match() {
	b := router.NewBuilder()
	b.GET("/widgets", show("list"))

	rt, err := b.Freeze()
	if err != nil {
		fmt.Println("build failed:", err)
		return
	}

	fmt.Println(rt.Match(http.MethodGet, "/widgets").Outcome == router.OutcomeMatched)
	fmt.Println(rt.Match(http.MethodPut, "/widgets").Allow)
	fmt.Println(rt.Match(http.MethodGet, "/gadgets").Outcome == router.OutcomeNoMatch)
	// Output:
	// true
	// [GET]
	// true
}

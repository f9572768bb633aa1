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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionData struct{ user string }

type counter struct{ n int }

func TestPutAndBorrow(t *testing.T) {
	t.Parallel()

	s := New()
	Put(s, sessionData{user: "alice"})

	got, err := Borrow[sessionData](s)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.user)
}

func TestPut_ReplacesExistingValue(t *testing.T) {
	t.Parallel()

	s := New()
	Put(s, counter{n: 1})
	Put(s, counter{n: 2})

	got, err := Borrow[counter](s)
	require.NoError(t, err)
	assert.Equal(t, 2, got.n)
	assert.Equal(t, 1, s.Len())
}

func TestBorrow_AbsentTypeIsTypedFailure(t *testing.T) {
	t.Parallel()

	s := New()
	_, err := Borrow[sessionData](s)

	require.Error(t, err)
	var ae *AbsentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "borrow", ae.Op)
	assert.True(t, IsAbsent(err))
}

func TestBorrowMut_MutatesInPlace(t *testing.T) {
	t.Parallel()

	s := New()
	Put(s, counter{n: 10})

	p, err := BorrowMut[counter](s)
	require.NoError(t, err)
	p.n += 5

	got, err := Borrow[counter](s)
	require.NoError(t, err)
	assert.Equal(t, 15, got.n)
}

func TestTake_RemovesValue(t *testing.T) {
	t.Parallel()

	s := New()
	Put(s, sessionData{user: "bob"})

	got, err := Take[sessionData](s)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.user)

	_, err = Take[sessionData](s)
	require.Error(t, err)
	assert.True(t, IsAbsent(err))
	assert.False(t, Has[sessionData](s))
}

func TestDistinctTypesCoexist(t *testing.T) {
	t.Parallel()

	s := New()
	Put(s, sessionData{user: "carol"})
	Put(s, counter{n: 7})

	sd, err := Borrow[sessionData](s)
	require.NoError(t, err)
	c, err := Borrow[counter](s)
	require.NoError(t, err)

	assert.Equal(t, "carol", sd.user)
	assert.Equal(t, 7, c.n)
}

func TestMustBorrow_PanicsOnAbsent(t *testing.T) {
	t.Parallel()

	s := New()
	assert.Panics(t, func() {
		MustBorrow[counter](s)
	})
}

func TestFromHTTP_CapturesMetadata(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/widgets/7?page=2", nil)
	req.Header.Set("X-Test", "yes")

	r := FromHTTP(req)
	assert.Equal(t, "GET", r.Method)
	assert.Equal(t, "/widgets/7", r.Path)
	assert.Equal(t, "2", r.Query.Get("page"))
	assert.Equal(t, "yes", r.Header.Get("X-Test"))
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	s := New()
	assert.Empty(t, RequestID(s))

	SetRequestID(s, "req-123")
	assert.Equal(t, "req-123", RequestID(s))

	// The identifier lives under its own type and does not collide with
	// application strings.
	Put(s, "unrelated")
	assert.Equal(t, "req-123", RequestID(s))
}

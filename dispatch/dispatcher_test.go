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

package dispatch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/core/handler"
	"rivaas.dev/core/pipeline"
	"rivaas.dev/core/router"
	"rivaas.dev/core/state"
)

func okHandler(body string) handler.Handler {
	return handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		return handler.Text(http.StatusOK, body), nil
	})
}

func mustFreeze(t *testing.T, build func(*router.Builder)) *router.Router {
	t.Helper()
	b := router.NewBuilder()
	build(b)
	rt, err := b.Freeze()
	require.NoError(t, err)
	return rt
}

func emptySet() *pipeline.Set {
	return pipeline.NewSetBuilder().Finalize()
}

func TestDispatch_MatchedRouteSeesParams(t *testing.T) {
	t.Parallel()

	echo := handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		params := state.MustBorrow[router.Params](s)
		id, _ := params.Get("id")
		return handler.Text(http.StatusOK, id), nil
	})
	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/widgets/:id", echo)
	})

	d := New(rt, emptySet())
	res := d.Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/widgets/42", nil))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "42", string(res.Body))
}

func TestDispatch_RequestMetadataSeeded(t *testing.T) {
	t.Parallel()

	inspect := handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		req := state.MustBorrow[state.Request](s)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/meta", req.Path)
		assert.NotEmpty(t, state.RequestID(s))
		_, ok := StartTime(s)
		assert.True(t, ok)
		return handler.Text(http.StatusOK, "ok"), nil
	})
	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/meta", inspect)
	})

	res := New(rt, emptySet()).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/meta", nil))
	require.Equal(t, http.StatusOK, res.Status)
}

func TestDispatch_NoMatchIs404(t *testing.T) {
	t.Parallel()

	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/widgets", okHandler("ok"))
	})

	res := New(rt, emptySet()).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/widget", nil))
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestDispatch_VerbMismatchIs405WithAllow(t *testing.T) {
	t.Parallel()

	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/widgets", okHandler("ok"))
	})

	res := New(rt, emptySet()).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodPut, "/widgets", nil))
	require.Equal(t, http.StatusMethodNotAllowed, res.Status)
	assert.Equal(t, "GET", res.Header.Get("Allow"))
}

func TestDispatch_RoutingMissSkipsPipelinesButRunsFinalizers(t *testing.T) {
	t.Parallel()

	var mwRan, finRan bool
	sb := pipeline.NewSetBuilder()
	chain := sb.Add(pipeline.Of(pipeline.Func(
		func(ctx context.Context, s *state.State, next pipeline.Next) (*handler.Response, error) {
			mwRan = true
			return next(ctx, s)
		})))
	set := sb.Finalize()

	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/widgets", okHandler("ok"), router.WithChains(chain))
	})

	fin := FinalizerFunc(func(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response {
		finRan = true
		return nil
	})

	res := New(rt, set, WithFinalizers(fin)).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.False(t, mwRan)
	assert.True(t, finRan)
}

func TestDispatch_ChainsConcatenateInRouteOrder(t *testing.T) {
	t.Parallel()

	var order []string
	stage := func(name string) pipeline.Middleware {
		return pipeline.Func(func(ctx context.Context, s *state.State, next pipeline.Next) (*handler.Response, error) {
			order = append(order, name+"-in")
			res, err := next(ctx, s)
			order = append(order, name+"-out")
			return res, err
		})
	}

	sb := pipeline.NewSetBuilder()
	first := sb.Add(pipeline.Of(stage("a"), stage("b")))
	second := sb.Add(pipeline.Of(stage("c")))
	set := sb.Finalize()

	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/widgets", okHandler("ok"), router.WithChains(first, second))
	})

	res := New(rt, set).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/widgets", nil))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []string{"a-in", "b-in", "c-in", "c-out", "b-out", "a-out"}, order)
}

func TestDispatch_ExtractionFailureIs400(t *testing.T) {
	t.Parallel()

	var handlerRan bool
	h := handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		handlerRan = true
		return handler.Text(http.StatusOK, "ok"), nil
	})

	ex := router.ExtractorFunc(func(s *state.State, params router.Params, query url.Values) error {
		_, err := router.IntParam(params, "id")
		return err
	})
	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/widgets/:id", h, router.WithExtractor(ex))
	})

	res := New(rt, emptySet()).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/widgets/not-a-number", nil))
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.False(t, handlerRan)
}

func TestDispatch_HandlerErrorIs500(t *testing.T) {
	t.Parallel()

	failing := handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		return nil, assert.AnError
	})
	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/boom", failing)
	})

	res := New(rt, emptySet()).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, res.Status)
}

func TestDispatch_PanicTrappedAs500(t *testing.T) {
	t.Parallel()

	var seen error
	panicking := handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		panic("kaboom")
	})
	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/boom", panicking)
	})

	fin := FinalizerFunc(func(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response {
		seen = err
		return nil
	})

	res := New(rt, emptySet(), WithFinalizers(fin)).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, res.Status)

	var pe *PanicError
	require.ErrorAs(t, seen, &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestDispatch_CancellationIs499AndFinalizersStillRun(t *testing.T) {
	t.Parallel()

	var handlerRan, finRan bool
	h := handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		handlerRan = true
		return handler.Text(http.StatusOK, "ok"), nil
	})
	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/slow", h)
	})

	fin := FinalizerFunc(func(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response {
		finRan = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(rt, emptySet(), WithFinalizers(fin)).
		Dispatch(ctx, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, StatusClientClosedRequest, res.Status)
	assert.False(t, handlerRan)
	assert.True(t, finRan)
}

func TestDispatch_FinalizersReverseOrderAndReplace(t *testing.T) {
	t.Parallel()

	var order []string
	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/widgets", okHandler("ok"))
	})

	first := FinalizerFunc(func(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response {
		order = append(order, "first")
		return nil
	})
	second := FinalizerFunc(func(ctx context.Context, s *state.State, res *handler.Response, err error) *handler.Response {
		order = append(order, "second")
		return res.WithHeader("X-Second", "yes")
	})

	res := New(rt, emptySet(), WithFinalizers(first, second)).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/widgets", nil))
	assert.Equal(t, []string{"second", "first"}, order)
	assert.Equal(t, "yes", res.Header.Get("X-Second"))
}

func TestFinalizer_StandardHeaders(t *testing.T) {
	t.Parallel()

	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/widgets", okHandler("ok"))
	})

	res := New(rt, emptySet(), WithFinalizers(XRequestID(), XRuntimeMicroseconds())).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/widgets", nil))

	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
	assert.NotEmpty(t, res.Header.Get("X-Runtime-Microseconds"))
}

// recordingRecorder captures lifecycle callbacks for assertions.
type recordingRecorder struct {
	started bool
	ended   bool
	status  int
	elapsed time.Duration
}

type recorderKey struct{}

func (r *recordingRecorder) OnRequestStart(ctx context.Context, s *state.State) context.Context {
	r.started = true
	return context.WithValue(ctx, recorderKey{}, "present")
}

func (r *recordingRecorder) OnRequestEnd(ctx context.Context, s *state.State, res *handler.Response, err error, elapsed time.Duration) {
	r.ended = true
	r.status = res.Status
	r.elapsed = elapsed
}

func TestDispatch_RecorderSeesLifecycleAndContext(t *testing.T) {
	t.Parallel()

	var sawValue bool
	h := handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		sawValue = ctx.Value(recorderKey{}) != nil
		return handler.Text(http.StatusOK, "ok"), nil
	})
	rt := mustFreeze(t, func(b *router.Builder) {
		b.GET("/widgets", h)
	})

	rec := &recordingRecorder{}
	res := New(rt, emptySet(), WithRecorder(rec)).
		Dispatch(context.Background(), httptest.NewRequest(http.MethodGet, "/widgets", nil))

	require.Equal(t, http.StatusOK, res.Status)
	assert.True(t, rec.started)
	assert.True(t, rec.ended)
	assert.Equal(t, http.StatusOK, rec.status)
	assert.True(t, sawValue)
	assert.GreaterOrEqual(t, rec.elapsed, time.Duration(0))
}

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

package core

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/core/bag"
	"rivaas.dev/core/config"
	"rivaas.dev/core/dispatch"
	"rivaas.dev/core/handler"
	"rivaas.dev/core/pipeline"
	"rivaas.dev/core/router"
	"rivaas.dev/core/state"
)

// stamp marks responses so tests can see the chain ran.
type stamp struct {
	header, value string
}

func (m stamp) Call(ctx context.Context, s *state.State, next pipeline.Next) (*handler.Response, error) {
	res, err := next(ctx, s)
	if err != nil {
		return nil, err
	}
	res.Header.Set(m.header, m.value)
	return res, nil
}

// newKernel assembles the full stack: bag, pipeline set, route tree,
// dispatcher, kernel.
func newKernel(t *testing.T) *Kernel {
	t.Helper()

	bg := bag.NewBuilder()
	stampH := bag.Add(bg, stamp{header: "X-Chain", value: "ran"})
	frozen := bg.Freeze()

	pipes := pipeline.NewSetBuilder()
	defaultChain := pipes.Add(pipeline.New(frozen, pipeline.HandleFor(stampH)))
	set := pipes.Finalize()

	echo := handler.Func(func(ctx context.Context, s *state.State) (*handler.Response, error) {
		params := state.MustBorrow[router.Params](s)
		id, _ := params.Get("id")
		return handler.Text(http.StatusOK, "widget "+id), nil
	})

	rb := router.NewBuilder()
	rb.Scope("/api", func(api *router.Builder) {
		api.GET("/widgets/:id", echo, router.WithChains(defaultChain))
	})
	rt, err := rb.Freeze()
	require.NoError(t, err)

	d := dispatch.New(rt, set, dispatch.WithFinalizers(
		dispatch.XRequestID(),
		dispatch.XRuntimeMicroseconds(),
	))
	return New(d)
}

func TestKernel_EndToEnd(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newKernel(t))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/widgets/7")
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "widget 7", string(body))
	assert.Equal(t, "ran", res.Header.Get("X-Chain"))
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
	assert.NotEmpty(t, res.Header.Get("X-Runtime-Microseconds"))
}

func TestKernel_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newKernel(t))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/widgets")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/widgets/7", nil)
	require.NoError(t, err)
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Equal(t, "GET", res.Header.Get("Allow"))
	// Finalizers run on routing misses too.
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestKernel_ServeHTTPDirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newKernel(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/widgets/9", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "widget 9", rec.Body.String())
}

func TestKernel_WithServerConfig(t *testing.T) {
	t.Parallel()

	sc := config.ServerConfig{
		H2C:               true,
		ReadHeaderTimeout: 1 * time.Second,
		ReadTimeout:       2 * time.Second,
		WriteTimeout:      3 * time.Second,
		IdleTimeout:       4 * time.Second,
	}
	k := New(nil, WithServerConfig(sc))

	assert.True(t, k.h2c)
	assert.Equal(t, 2*time.Second, k.timeouts.read)

	srv := k.newServer(":0", k)
	assert.Equal(t, 1*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 3*time.Second, srv.WriteTimeout)
	assert.Equal(t, 4*time.Second, srv.IdleTimeout)
}

func TestKernel_ShutdownWithoutServe(t *testing.T) {
	t.Parallel()

	require.NoError(t, New(nil).Shutdown(context.Background()))
}

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

package observe

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"rivaas.dev/core/dispatch"
	"rivaas.dev/core/handler"
	"rivaas.dev/core/state"
)

// routeUnmatched labels telemetry for requests no route consumed, so
// 404 floods cannot explode label cardinality with raw paths.
const routeUnmatched = "unmatched"

// MetricsRecorder counts and times requests with Prometheus. Labels are
// method, route pattern, and status; durations are recorded in seconds
// against the default buckets.
type MetricsRecorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// MetricsOption configures a MetricsRecorder.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	namespace  string
	registerer prometheus.Registerer
}

// WithNamespace overrides the metric namespace. Default "core".
func WithNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) {
		c.namespace = ns
	}
}

// WithRegisterer overrides the registry; default is the global
// prometheus.DefaultRegisterer. Tests pass a private registry here.
func WithRegisterer(r prometheus.Registerer) MetricsOption {
	return func(c *metricsConfig) {
		c.registerer = r
	}
}

// NewMetricsRecorder creates and registers the request metrics. It
// fails if a collector with the same name is already registered, which
// usually means two recorders share one registry.
func NewMetricsRecorder(opts ...MetricsOption) (*MetricsRecorder, error) {
	cfg := metricsConfig{
		namespace:  "core",
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &MetricsRecorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests dispatched, by method, route pattern, and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request processing time, by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := cfg.registerer.Register(c); err != nil {
			return nil, fmt.Errorf("observe: register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *MetricsRecorder) OnRequestStart(ctx context.Context, s *state.State) context.Context {
	return ctx
}

func (m *MetricsRecorder) OnRequestEnd(ctx context.Context, s *state.State, res *handler.Response, err error, elapsed time.Duration) {
	method := "UNKNOWN"
	if req, reqErr := state.Borrow[state.Request](s); reqErr == nil {
		method = req.Method
	}
	route := routeUnmatched
	if ri, riErr := state.Borrow[dispatch.RouteInfo](s); riErr == nil {
		route = ri.Pattern
	}

	m.requests.WithLabelValues(method, route, strconv.Itoa(res.Status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

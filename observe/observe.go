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

// Package observe provides ready-made dispatch.Recorder implementations:
// an OpenTelemetry span per request, Prometheus request metrics, and a
// structured access log.
//
// Recorders are independent; combine them with dispatch.Recorders:
//
//	metrics, err := observe.NewMetricsRecorder()
//	if err != nil {
//	    return err
//	}
//	d := dispatch.New(rt, set, dispatch.WithRecorder(dispatch.Recorders{
//	    observe.NewTraceRecorder(),
//	    metrics,
//	    observe.NewLogRecorder(logger),
//	}))
//
// Telemetry is labeled with the matched route pattern rather than the
// raw request path, so cardinality stays bounded by the route table.
package observe

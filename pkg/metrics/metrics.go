// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
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

// Package metrics provides opt-in, low-overhead instrumentation for the
// filter core. It is designed to be safe to call from hot paths: the
// default Recorder is a no-op, so compressors pay nothing when metrics
// are not wired in.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder receives per-call observations from a compressor or a
// FilterTree. Implementations must be safe for concurrent use only if the
// caller serializes series across goroutines that share a Recorder; the
// prometheus counters below are themselves safe for concurrent use.
type Recorder interface {
	// ObserveInput is called once per accepted filter_point call.
	ObserveInput()
	// ObserveEmit is called with the number of points emitted by that call.
	ObserveEmit(n int)
	// ObserveRejected is called when a sample is rejected with ErrInvalidOrder.
	ObserveRejected()
	// ObserveFlush is called on every flush(), reporting whether it emitted.
	ObserveFlush(emitted bool)
	// ObserveNodeCreated is called by a FilterTree whenever walk lazily
	// creates a new node.
	ObserveNodeCreated()
}

// NoOp is the default Recorder: every method is a no-op.
var NoOp Recorder = noOpRecorder{}

type noOpRecorder struct{}

func (noOpRecorder) ObserveInput()       {}
func (noOpRecorder) ObserveEmit(int)     {}
func (noOpRecorder) ObserveRejected()    {}
func (noOpRecorder) ObserveFlush(bool)   {}
func (noOpRecorder) ObserveNodeCreated() {}

// Prometheus is a Recorder backed by its own prometheus counters and one
// histogram. NewPrometheus registers them against the Registerer it is
// given; exposing that registry (promhttp.Handler, a pushgateway client,
// etc.) is left to the caller — this
// package does not start an HTTP server itself, mirroring the teacher's
// churn module convention of leaving transport to the caller.
type Prometheus struct {
	inputsTotal    prometheus.Counter
	emittedTotal   prometheus.Counter
	rejectedTotal  prometheus.Counter
	flushesTotal   prometheus.Counter
	flushEmitted   prometheus.Counter
	nodesCreated   prometheus.Counter
	emitsPerInput  prometheus.Histogram
}

// NewPrometheus creates a Prometheus recorder and registers its metrics
// against reg. Pass prometheus.DefaultRegisterer for the global registry.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		inputsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filter_inputs_total",
			Help: "Total samples accepted by filter_point across all compressors sharing this recorder.",
		}),
		emittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filter_points_emitted_total",
			Help: "Total points emitted by filter_point (excludes flush).",
		}),
		rejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filter_points_rejected_total",
			Help: "Total samples rejected with ErrInvalidOrder.",
		}),
		flushesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filter_flushes_total",
			Help: "Total flush() calls.",
		}),
		flushEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filter_flush_emitted_total",
			Help: "Total flush() calls that emitted a point.",
		}),
		nodesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filter_tree_nodes_created_total",
			Help: "Total FilterTree nodes lazily created.",
		}),
		emitsPerInput: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "filter_emits_per_input",
			Help:    "Distribution of points emitted per filter_point call.",
			Buckets: []float64{0, 1, 2},
		}),
	}
	reg.MustRegister(p.inputsTotal, p.emittedTotal, p.rejectedTotal, p.flushesTotal, p.flushEmitted, p.nodesCreated, p.emitsPerInput)
	return p
}

func (p *Prometheus) ObserveInput() { p.inputsTotal.Inc() }

func (p *Prometheus) ObserveEmit(n int) {
	p.emittedTotal.Add(float64(n))
	p.emitsPerInput.Observe(float64(n))
}

func (p *Prometheus) ObserveRejected() { p.rejectedTotal.Inc() }

func (p *Prometheus) ObserveFlush(emitted bool) {
	p.flushesTotal.Inc()
	if emitted {
		p.flushEmitted.Inc()
	}
}

func (p *Prometheus) ObserveNodeCreated() { p.nodesCreated.Inc() }

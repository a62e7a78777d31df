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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNoOpRecorderNeverPanics(t *testing.T) {
	NoOp.ObserveInput()
	NoOp.ObserveEmit(2)
	NoOp.ObserveRejected()
	NoOp.ObserveFlush(true)
	NoOp.ObserveNodeCreated()
}

func TestPrometheusRecorderCountsObservations(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.ObserveInput()
	p.ObserveInput()
	p.ObserveEmit(1)
	p.ObserveRejected()
	p.ObserveFlush(true)
	p.ObserveFlush(false)
	p.ObserveNodeCreated()

	if got := counterValue(t, p.inputsTotal); got != 2 {
		t.Errorf("inputsTotal = %v, want 2", got)
	}
	if got := counterValue(t, p.emittedTotal); got != 1 {
		t.Errorf("emittedTotal = %v, want 1", got)
	}
	if got := counterValue(t, p.rejectedTotal); got != 1 {
		t.Errorf("rejectedTotal = %v, want 1", got)
	}
	if got := counterValue(t, p.flushesTotal); got != 2 {
		t.Errorf("flushesTotal = %v, want 2", got)
	}
	if got := counterValue(t, p.flushEmitted); got != 1 {
		t.Errorf("flushEmitted = %v, want 1", got)
	}
	if got := counterValue(t, p.nodesCreated); got != 1 {
		t.Errorf("nodesCreated = %v, want 1", got)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

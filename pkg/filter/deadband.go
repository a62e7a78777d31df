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

package filter

import "dbfilter/pkg/metrics"

// DeadbandFilter suppresses samples that stay within a constant band
// around the last emitted value, subject to a maximum gap between emitted
// points. This is the constant-band variant; a per-step gradient variant
// exists in prior art but is not implemented here (see DESIGN.md).
type DeadbandFilter struct {
	params   Parameters
	recorder metrics.Recorder

	hasState bool
	base     Point // last emitted reference
	last     Point // most recent input regardless of emission
}

// NewDeadbandFilter constructs a DeadbandFilter. Returns ErrInvalidParameter
// if params is out of range.
func NewDeadbandFilter(params Parameters, opts ...Option) (*DeadbandFilter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &DeadbandFilter{params: params, recorder: o.recorder}, nil
}

// FilterPoint implements Filter.
func (d *DeadbandFilter) FilterPoint(t, v float64) ([]Point, error) {
	in := Point{Time: t, Value: v}

	if !d.hasState {
		d.hasState = true
		d.base = in
		d.last = in
		d.recorder.ObserveInput()
		d.recorder.ObserveEmit(1)
		return []Point{in}, nil
	}

	if t <= d.last.Time {
		d.recorder.ObserveRejected()
		return nil, ErrInvalidOrder
	}
	d.recorder.ObserveInput()

	var out []Point

	// Timeout: the previous suppressed sample is flushed so it remains
	// reconstructable, and base advances to it.
	if (t - d.base.Time) > d.params.MaxInterval {
		out = append(out, Point{Time: d.last.Time, Value: d.last.Value})
		d.base = d.last
	}

	outside := abs(v-d.base.Value) > d.params.Threshold
	timedOut := (t - d.base.Time) > d.params.MaxInterval
	if outside || timedOut {
		out = append(out, in)
		d.base = in
	}

	d.last = in
	d.recorder.ObserveEmit(len(out))
	return out, nil
}

// Flush implements Filter. It emits the last input point iff state is
// non-empty and the last input differs from the current base, then
// advances base to last so a second call with no intervening input is a
// no-op.
func (d *DeadbandFilter) Flush() []Point {
	if !d.hasState {
		d.recorder.ObserveFlush(false)
		return nil
	}
	if d.last != d.base {
		out := []Point{{Time: d.last.Time, Value: d.last.Value}}
		d.base = d.last
		d.recorder.ObserveFlush(true)
		return out
	}
	d.recorder.ObserveFlush(false)
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

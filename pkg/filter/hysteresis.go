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

// HysteresisFilter suppresses samples while the running max-min spread
// since the last emission stays within threshold, subject to a maximum
// gap between emitted points.
type HysteresisFilter struct {
	params   Parameters
	recorder metrics.Recorder

	hasState    bool
	minValue    float64
	maxValue    float64
	windowStart float64
	last        Point
	lastEmitted Point
}

// NewHysteresisFilter constructs a HysteresisFilter. Returns
// ErrInvalidParameter if params is out of range.
func NewHysteresisFilter(params Parameters, opts ...Option) (*HysteresisFilter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &HysteresisFilter{params: params, recorder: o.recorder}, nil
}

// FilterPoint implements Filter.
func (h *HysteresisFilter) FilterPoint(t, v float64) ([]Point, error) {
	in := Point{Time: t, Value: v}

	if !h.hasState {
		h.hasState = true
		h.minValue, h.maxValue = v, v
		h.windowStart = t
		h.last = in
		h.lastEmitted = in
		h.recorder.ObserveInput()
		h.recorder.ObserveEmit(1)
		return []Point{in}, nil
	}

	if t <= h.last.Time {
		h.recorder.ObserveRejected()
		return nil, ErrInvalidOrder
	}
	h.recorder.ObserveInput()

	var out []Point

	if (t - h.windowStart) > h.params.MaxInterval {
		out = append(out, Point{Time: h.last.Time, Value: h.last.Value})
		h.lastEmitted = h.last
		h.windowStart = h.last.Time
		h.minValue, h.maxValue = h.last.Value, h.last.Value
	}

	if v < h.minValue {
		h.minValue = v
	}
	if v > h.maxValue {
		h.maxValue = v
	}

	if (h.maxValue-h.minValue) > h.params.Threshold || (t-h.windowStart) > h.params.MaxInterval {
		out = append(out, in)
		h.lastEmitted = in
		h.windowStart = t
		h.minValue, h.maxValue = v, v
	}

	h.last = in
	h.recorder.ObserveEmit(len(out))
	return out, nil
}

// Flush implements Filter. It emits the last input iff state is non-empty
// and the last emission was not already the last input.
func (h *HysteresisFilter) Flush() []Point {
	if !h.hasState {
		h.recorder.ObserveFlush(false)
		return nil
	}
	if h.lastEmitted != h.last {
		out := []Point{{Time: h.last.Time, Value: h.last.Value}}
		h.lastEmitted = h.last
		h.recorder.ObserveFlush(true)
		return out
	}
	h.recorder.ObserveFlush(false)
	return nil
}

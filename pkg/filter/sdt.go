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

import (
	"math"

	"dbfilter/pkg/metrics"
)

// SdtFilter implements swinging-door trending: it maintains a parallelogram
// envelope (upper/lower pivot plus the tightest slopes seen to each) and
// emits a point when the envelope collapses.
//
// The running extrema are tracked as sUpperMax, a running maximum of
// slopes to the upper pivot, and sLowerMin, a running minimum of slopes to
// the lower pivot. The window-reset step re-derives both from the
// geometric invariant sUpperMax <= sLowerMin (see DESIGN.md).
type SdtFilter struct {
	params   Parameters
	recorder metrics.Recorder

	count int
	last  Point

	upperPivot Point
	lowerPivot Point
	sUpperMax  float64
	sLowerMin  float64

	history    [2]Point
	historyLen int

	pendingFlush bool
}

// NewSdtFilter constructs an SdtFilter. params.Threshold is the
// compression deviation (half-height of the parallelogram).
func NewSdtFilter(params Parameters, opts ...Option) (*SdtFilter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &SdtFilter{params: params, recorder: o.recorder}, nil
}

func (s *SdtFilter) dev() float64 { return s.params.Threshold }

func (s *SdtFilter) pushHistory(p Point) {
	if s.historyLen < 2 {
		s.history[s.historyLen] = p
		s.historyLen++
		return
	}
	s.history[0] = s.history[1]
	s.history[1] = p
}

func (s *SdtFilter) oldestHistory() Point {
	return s.history[0]
}

// anchorAt re-anchors the envelope at p with no accumulated slope history,
// exactly as the first sample does. Used both for the initial sample and
// to re-center after a flush.
func (s *SdtFilter) anchorAt(p Point) {
	s.upperPivot = Point{Time: p.Time, Value: p.Value + s.dev()}
	s.lowerPivot = Point{Time: p.Time, Value: p.Value - s.dev()}
	s.sUpperMax = math.Inf(-1)
	s.sLowerMin = math.Inf(1)
}

// updateWindow re-anchors the envelope at anchor and recomputes the two
// sloping limits from origin to the new pivots, so the envelope contains
// origin.
func (s *SdtFilter) updateWindow(origin, anchor Point) {
	s.upperPivot = Point{Time: anchor.Time, Value: anchor.Value + s.dev()}
	s.lowerPivot = Point{Time: anchor.Time, Value: anchor.Value - s.dev()}
	s.sUpperMax = slopeTo(origin, s.upperPivot)
	s.sLowerMin = slopeTo(origin, s.lowerPivot)
}

func slopeTo(from, to Point) float64 {
	if to.Time == from.Time {
		if to.Value >= from.Value {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	return (to.Value - from.Value) / (to.Time - from.Time)
}

// lineIntersect returns the intersection of the line through p1 with slope
// slope1 and the line through p2 with slope slope2.
func lineIntersect(p1 Point, slope1 float64, p2 Point, slope2 float64) Point {
	x := (p2.Value - p1.Value - slope2*p2.Time + slope1*p1.Time) / (slope1 - slope2)
	y := p1.Value + slope1*(x-p1.Time)
	return Point{Time: x, Value: y}
}

// FilterPoint implements Filter.
func (s *SdtFilter) FilterPoint(t, v float64) ([]Point, error) {
	in := Point{Time: t, Value: v}

	if s.count == 0 {
		s.count = 1
		s.last = in
		s.anchorAt(in)
		s.pushHistory(in)
		s.pendingFlush = true
		s.recorder.ObserveInput()
		s.recorder.ObserveEmit(1)
		return []Point{in}, nil
	}

	if t <= s.last.Time {
		s.recorder.ObserveRejected()
		return nil, ErrInvalidOrder
	}
	s.recorder.ObserveInput()
	s.count++
	s.pendingFlush = true

	prev := s.last

	// Timeouts take priority over envelope checks.
	if t-s.oldestHistory().Time > s.params.MaxInterval {
		origin := s.oldestHistory()
		s.updateWindow(origin, in)
		s.last = in
		s.pushHistory(in)
		s.recorder.ObserveEmit(1)
		return []Point{in}, nil
	}

	su := slopeTo(s.upperPivot, in)
	sl := slopeTo(s.lowerPivot, in)

	if su > s.sUpperMax {
		s.sUpperMax = su
		if s.sUpperMax > s.sLowerMin {
			n := lineIntersect(s.upperPivot, s.sLowerMin, prev, slopeTo(prev, in))
			n.Value -= s.dev() / 2
			s.last = in
			s.updateWindow(in, n)
			s.pushHistory(in)
			s.recorder.ObserveEmit(1)
			return []Point{n}, nil
		}
	}

	if sl < s.sLowerMin {
		s.sLowerMin = sl
		if s.sUpperMax > s.sLowerMin {
			n := lineIntersect(s.lowerPivot, s.sUpperMax, prev, slopeTo(prev, in))
			n.Value += s.dev() / 2
			s.last = in
			s.updateWindow(in, n)
			s.pushHistory(in)
			s.recorder.ObserveEmit(1)
			return []Point{n}, nil
		}
	}

	s.last = in
	s.pushHistory(in)
	s.recorder.ObserveEmit(0)
	return nil, nil
}

// Flush implements Filter. If at least two samples have been observed, it
// emits the most recent input sample verbatim and re-anchors the window
// around it; a second call with no intervening input is a no-op.
func (s *SdtFilter) Flush() []Point {
	if s.count < 2 || !s.pendingFlush {
		s.recorder.ObserveFlush(false)
		return nil
	}
	out := []Point{s.last}
	s.anchorAt(s.last)
	s.history[0] = s.last
	s.historyLen = 1
	s.pendingFlush = false
	s.recorder.ObserveFlush(true)
	return out
}

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
	"errors"
	"testing"
)

func TestDeadbandFilterBandTrigger(t *testing.T) {
	f, err := NewDeadbandFilter(Parameters{Threshold: 5, MaxInterval: 1000})
	if err != nil {
		t.Fatalf("NewDeadbandFilter: %v", err)
	}

	type step struct {
		t, v float64
		want []Point
	}
	steps := []step{
		{0, 10, []Point{{0, 10}}},
		{1, 12, nil},
		{2, 14, nil},
		{3, 16, []Point{{3, 16}}},
		{4, 15, nil},
	}
	for _, s := range steps {
		got, err := f.FilterPoint(s.t, s.v)
		if err != nil {
			t.Fatalf("FilterPoint(%v,%v): %v", s.t, s.v, err)
		}
		if !pointsEqual(got, s.want) {
			t.Errorf("FilterPoint(%v,%v): got %v, want %v", s.t, s.v, got, s.want)
		}
	}
}

func TestDeadbandFilterTimeout(t *testing.T) {
	f, _ := NewDeadbandFilter(Parameters{Threshold: 100, MaxInterval: 10})
	if _, err := f.FilterPoint(0, 5); err != nil {
		t.Fatalf("FilterPoint: %v", err)
	}
	if _, err := f.FilterPoint(5, 5); err != nil {
		t.Fatalf("FilterPoint: %v", err)
	}
	emitted, err := f.FilterPoint(20, 5)
	if err != nil {
		t.Fatalf("FilterPoint: %v", err)
	}
	want := []Point{{5, 5}, {20, 5}}
	if !pointsEqual(emitted, want) {
		t.Errorf("timeout emission: got %v, want %v", emitted, want)
	}
}

func TestDeadbandFilterFlush(t *testing.T) {
	f, _ := NewDeadbandFilter(Parameters{Threshold: 5, MaxInterval: 1000})
	f.FilterPoint(0, 10)
	f.FilterPoint(1, 12)

	out := f.Flush()
	want := []Point{{1, 12}}
	if !pointsEqual(out, want) {
		t.Fatalf("Flush: got %v, want %v", out, want)
	}
	if out := f.Flush(); out != nil {
		t.Fatalf("second Flush: got %v, want nil", out)
	}
}

func TestDeadbandFilterRejectsNonIncreasingTime(t *testing.T) {
	f, _ := NewDeadbandFilter(Parameters{Threshold: 5, MaxInterval: 1000})
	f.FilterPoint(10, 1)
	if _, err := f.FilterPoint(10, 2); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("got %v, want ErrInvalidOrder", err)
	}
}

func TestDeadbandFilterRejectsInvalidParameters(t *testing.T) {
	if _, err := NewDeadbandFilter(Parameters{Threshold: -1, MaxInterval: 10}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("negative threshold: got %v, want ErrInvalidParameter", err)
	}
	if _, err := NewDeadbandFilter(Parameters{Threshold: 1, MaxInterval: 0}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero max_interval: got %v, want ErrInvalidParameter", err)
	}
}

func pointsEqual(got, want []Point) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

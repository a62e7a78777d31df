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

// Filter is the capability exposed by every compressor. Implementations
// are DeadbandFilter, HysteresisFilter, and SdtFilter; a FilterTree node
// also satisfies Filter by delegating to its own inner compressor.
type Filter interface {
	// FilterPoint admits one sample in chronological order and returns the
	// 0, 1, or 2 points it causes to be emitted. Returns ErrInvalidOrder if
	// time does not strictly increase over the previous accepted sample.
	FilterPoint(time, value float64) ([]Point, error)

	// Flush releases any suppressed-but-significant residual point. It is
	// idempotent after the first call if no new input arrives in between.
	Flush() []Point
}

// Table is a two-column tabular batch: a time column and a value column
// sharing an index, with the column names preserved from input to output
// per the SerialAdapter contract (C3).
type Table struct {
	TimeColumn  string
	ValueColumn string
	Times       []float64
	Values      []float64
}

// Len returns the number of rows, or -1 if the columns are inconsistent.
func (t Table) Len() int {
	if len(t.Times) != len(t.Values) {
		return -1
	}
	return len(t.Times)
}

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

// FilterPointsList runs every (time, value) pair in xs through f.FilterPoint
// in order and concatenates the results. It never calls Flush — callers
// decide whether to flush at the end of a batch. This is the free-function
// mix-in (C3 SerialAdapter) rather than an inheritance hierarchy: any Filter
// gets batch semantics for free by calling this helper instead of
// reimplementing iteration.
func FilterPointsList(f Filter, xs []Point) ([]Point, error) {
	var out []Point
	for _, x := range xs {
		emitted, err := f.FilterPoint(x.Time, x.Value)
		if err != nil {
			return out, err
		}
		out = append(out, emitted...)
	}
	return out, nil
}

// FilterPointsTable runs a two-column table through f.FilterPoint and
// returns a table of the same column names populated by flattening the
// emitted points in order. Returns ErrInvalidShape if the columns are of
// unequal length.
func FilterPointsTable(f Filter, in Table) (Table, error) {
	if in.Len() < 0 {
		return Table{}, ErrInvalidShape
	}
	out := Table{TimeColumn: in.TimeColumn, ValueColumn: in.ValueColumn}
	for i := range in.Times {
		emitted, err := f.FilterPoint(in.Times[i], in.Values[i])
		if err != nil {
			return out, err
		}
		for _, p := range emitted {
			out.Times = append(out.Times, p.Time)
			out.Values = append(out.Values, p.Value)
		}
	}
	return out, nil
}

// SerialAdapter lifts a point-wise Filter into a batch filter, adding
// FilterPoints on top of the embedded Filter's FilterPoint/Flush. It
// satisfies Filter itself (via the embedded field) so it can be used
// anywhere a Filter is expected, plus the batch entry points.
type SerialAdapter struct {
	Filter
}

// NewSerialAdapter wraps f with batch (list/table) entry points.
func NewSerialAdapter(f Filter) SerialAdapter {
	return SerialAdapter{Filter: f}
}

// FilterPointsList is the list-batch form; see the free function of the
// same purpose for the underlying semantics.
func (a SerialAdapter) FilterPointsList(xs []Point) ([]Point, error) {
	return FilterPointsList(a.Filter, xs)
}

// FilterPointsTable is the tabular-batch form; see FilterPointsTable.
func (a SerialAdapter) FilterPointsTable(in Table) (Table, error) {
	return FilterPointsTable(a.Filter, in)
}

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

// Package filter implements the streaming single-series compressors:
// deadband, hysteresis, and swinging-door trending (SDT). Each compressor
// consumes an ordered sequence of (time, value) samples and emits a sparse
// subsequence whose piecewise-linear reconstruction stays within a
// configured error envelope.
package filter

// Point is an immutable (time, value) sample. Time is seconds as a
// float64; callers feeding integer nanoseconds convert before calling in.
type Point struct {
	Time  float64
	Value float64
}

// Add returns the componentwise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{Time: p.Time + q.Time, Value: p.Value + q.Value}
}

// Sub returns the componentwise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{Time: p.Time - q.Time, Value: p.Value - q.Value}
}

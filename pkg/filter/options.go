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

// Option configures optional, non-algorithmic behaviour shared by every
// compressor constructor (currently just the metrics recorder).
type Option func(*options)

type options struct {
	recorder metrics.Recorder
}

func newOptions(opts []Option) options {
	o := options{recorder: metrics.NoOp}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// WithRecorder attaches a metrics.Recorder. Every compressor defaults to
// metrics.NoOp, so wiring one in is purely additive.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

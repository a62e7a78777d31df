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

import "errors"

// ErrInvalidOrder is returned when a sample's time does not strictly
// increase over the previous sample accepted by the same compressor.
var ErrInvalidOrder = errors.New("filter: time must strictly increase over previous sample")

// ErrInvalidShape is returned when a tabular batch is malformed. A Table
// always has exactly two columns (time, value), so this means the two
// columns differ in length.
var ErrInvalidShape = errors.New("filter: tabular batch must have exactly two columns")

// ErrInvalidParameter is returned at construction when threshold or
// max_interval are out of range.
var ErrInvalidParameter = errors.New("filter: invalid parameter")

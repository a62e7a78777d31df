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

package tree

import (
	"testing"

	"dbfilter/pkg/filter"
)

func deadbandFactory() Factory {
	return func() (filter.Filter, error) {
		return filter.NewDeadbandFilter(filter.Parameters{Threshold: 1, MaxInterval: 1000})
	}
}

func TestFilterTreeCanonicalWalk(t *testing.T) {
	ft, err := New(deadbandFactory())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	italy1 := ft.Walk([]Tag{{Name: "location", Value: "italy"}})
	japan := ft.Walk([]Tag{{Name: "location", Value: "japan"}})
	italy2 := ft.Walk([]Tag{{Name: "location", Value: "italy"}})

	if italy1 != italy2 {
		t.Fatalf("walk(italy) returned different instances on repeat calls")
	}
	if italy1 == japan {
		t.Fatalf("walk(italy) and walk(japan) returned the same instance")
	}

	categoryA := ft.Walk([]Tag{{Name: "category", Value: "a"}})
	locationItalyCategoryA := ft.Walk([]Tag{{Name: "location", Value: "italy"}, {Name: "category", Value: "a"}})

	if categoryA == locationItalyCategoryA {
		t.Fatalf("single-tag and two-tag paths collapsed to the same node")
	}

	children := ft.GetAllChildren(nil)
	if len(children) != 4 {
		t.Fatalf("GetAllChildren(nil): got %d nodes, want 4: %+v", len(children), children)
	}
}

func TestFilterTreeRootDelegatesToOwnCompressor(t *testing.T) {
	ft, err := New(deadbandFactory())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	emitted, err := ft.FilterPoint(0, 10)
	if err != nil {
		t.Fatalf("FilterPoint: %v", err)
	}
	if len(emitted) != 1 {
		t.Fatalf("got %v, want one point from the root's own compressor", emitted)
	}
}

func TestFilterTreeNodeDelegatesToItsOwnCompressorNotSubtree(t *testing.T) {
	ft, err := New(deadbandFactory())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	node := ft.Walk([]Tag{{Name: "location", Value: "italy"}})

	if _, err := node.FilterPoint(0, 10); err != nil {
		t.Fatalf("FilterPoint on leaf: %v", err)
	}

	// The root's own compressor must remain untouched by a leaf's samples.
	if _, err := ft.FilterPoint(0, 10); err != nil {
		t.Fatalf("root FilterPoint after leaf activity: %v", err)
	}
}

func TestGetAllChildrenScopesByPrefix(t *testing.T) {
	ft, err := New(deadbandFactory())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ft.Walk([]Tag{{Name: "location", Value: "italy"}})
	ft.Walk([]Tag{{Name: "location", Value: "italy"}, {Name: "category", Value: "a"}})
	ft.Walk([]Tag{{Name: "location", Value: "japan"}})

	underItaly := ft.GetAllChildren([]Tag{{Name: "location", Value: "italy"}})
	if len(underItaly) != 1 {
		t.Fatalf("GetAllChildren(italy): got %d, want 1: %+v", len(underItaly), underItaly)
	}
	if underItaly[0].Path[len(underItaly[0].Path)-1] != (Tag{Name: "category", Value: "a"}) {
		t.Fatalf("unexpected path: %+v", underItaly[0].Path)
	}
}

func TestSortTagsIsCanonical(t *testing.T) {
	a := SortTags([]Tag{{Name: "b", Value: "2"}, {Name: "a", Value: "1"}})
	b := SortTags([]Tag{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}})
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("SortTags not canonical: %+v vs %+v", a, b)
		}
	}
}

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

// Package tree implements FilterTree, a tag-indexed lazy tree of
// compressor instances. A heterogeneous stream of (measurement, field,
// tags) series is demultiplexed into one compressor per distinct sorted
// tag path, created on first reference and never destroyed for the life
// of the tree.
package tree

import (
	"sort"

	"dbfilter/pkg/filter"
	"dbfilter/pkg/metrics"
)

// Tag is one (name, value) pair in a tag path.
type Tag struct {
	Name  string
	Value string
}

// SortTags sorts tags lexicographically by name so that the same tag set
// always maps to the same node regardless of the order the caller
// collected them in. Ties on name are broken by value.
func SortTags(tags []Tag) []Tag {
	sorted := make([]Tag, len(tags))
	copy(sorted, tags)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Value < sorted[j].Value
	})
	return sorted
}

// Factory yields a fresh compressor for a newly created node.
type Factory func() (filter.Filter, error)

// Node is one level of the tree. It owns one compressor instance plus a
// mapping from tag name to the set of child nodes keyed by tag value. A
// node is created lazily on first reference by Walk and is never removed
// during the life of its parent.
type Node struct {
	compressor filter.Filter
	children   map[string]map[string]*Node
}

func newNode(c filter.Filter) *Node {
	return &Node{compressor: c, children: make(map[string]map[string]*Node)}
}

// FilterPoint delegates to this node's own compressor, not its subtree.
func (n *Node) FilterPoint(t, v float64) ([]filter.Point, error) {
	return n.compressor.FilterPoint(t, v)
}

// Flush delegates to this node's own compressor, not its subtree.
func (n *Node) Flush() []filter.Point {
	return n.compressor.Flush()
}

// Compressor exposes the node's own compressor instance, e.g. to wrap it
// in a filter.SerialAdapter for batch calls.
func (n *Node) Compressor() filter.Filter {
	return n.compressor
}

// FilterTree is a tag-indexed lazy tree of compressor instances,
// parameterised by a Factory. The root itself satisfies filter.Filter for
// the empty tag path by delegating to its own inner compressor.
type FilterTree struct {
	factory  Factory
	root     *Node
	recorder metrics.Recorder
}

// New constructs a FilterTree. factory is invoked once immediately to
// build the root's own compressor, and again every time Walk lazily
// creates a descendant.
func New(factory Factory, opts ...Option) (*FilterTree, error) {
	o := newOptions(opts)
	root, err := factory()
	if err != nil {
		return nil, err
	}
	return &FilterTree{factory: factory, root: newNode(root), recorder: o.recorder}, nil
}

// Option configures a FilterTree.
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

// WithRecorder attaches a metrics.Recorder; ObserveNodeCreated fires
// whenever Walk lazily creates a new node.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// FilterPoint delegates to the root's own compressor (the empty tag path).
func (ft *FilterTree) FilterPoint(t, v float64) ([]filter.Point, error) {
	return ft.root.FilterPoint(t, v)
}

// Flush delegates to the root's own compressor (the empty tag path).
func (ft *FilterTree) Flush() []filter.Point {
	return ft.root.Flush()
}

// Root returns the root node.
func (ft *FilterTree) Root() *Node {
	return ft.root
}

// Walk descends or lazily creates one child per tag, in the order
// supplied, and returns the reached node. Callers must sort tags (see
// SortTags) before calling to preserve canonicality: the same sorted tag
// path always resolves to the same node instance. Walk returns no error:
// New has already called the factory once and returned any error it gave.
// If the factory fails on a later call made by Walk, Walk panics.
func (ft *FilterTree) Walk(tags []Tag) *Node {
	n := ft.root
	for _, tag := range tags {
		byValue, ok := n.children[tag.Name]
		if !ok {
			byValue = make(map[string]*Node)
			n.children[tag.Name] = byValue
		}
		child, ok := byValue[tag.Value]
		if !ok {
			c, err := ft.factory()
			if err != nil {
				// A factory that validates its own parameters once at
				// tree construction time cannot fail here; a panic marks
				// a programming error rather than a runtime condition.
				panic("tree: factory failed during walk: " + err.Error())
			}
			child = newNode(c)
			byValue[tag.Value] = child
			ft.recorder.ObserveNodeCreated()
		}
		n = child
	}
	return n
}

// PathNode pairs an accumulated tag path with the node reached by it.
type PathNode struct {
	Path []Tag
	Node *Node
}

// GetAllChildren performs a pre-order traversal starting from the node
// reached by prefix (pass nil for the root) and returns every descendant,
// each paired with its accumulated tag path from the tree root.
func (ft *FilterTree) GetAllChildren(prefix []Tag) []PathNode {
	start := ft.root
	for _, tag := range prefix {
		byValue, ok := start.children[tag.Name]
		if !ok {
			return nil
		}
		child, ok := byValue[tag.Value]
		if !ok {
			return nil
		}
		start = child
	}

	var out []PathNode
	var visit func(path []Tag, n *Node)
	visit = func(path []Tag, n *Node) {
		// Deterministic order keeps traversal reproducible across runs.
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			values := make([]string, 0, len(n.children[name]))
			for value := range n.children[name] {
				values = append(values, value)
			}
			sort.Strings(values)
			for _, value := range values {
				child := n.children[name][value]
				childPath := append(append([]Tag(nil), path...), Tag{Name: name, Value: value})
				out = append(out, PathNode{Path: childPath, Node: child})
				visit(childPath, child)
			}
		}
	}
	visit(append([]Tag(nil), prefix...), start)
	return out
}

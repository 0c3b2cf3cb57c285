// SPDX-License-Identifier: MIT
//
// File: registry.go
// Role: Node catalog, container bindings and read-only queries.
//
// Determinism:
//   - Children(p) and LinksOfType enumerate children in lexicographic path order.
//
// Concurrency:
//   - mu guards nodes, children and bindings.
//   - Node state is atomic; transitions live in transitions.go.
//
// AI-HINT (file):
//   - Register is declaration only; nothing is created until AtStateOrLater asks for it.

package model

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Node is one declared entity in the graph. It implements Handle.
type Node struct {
	path   Path
	typ    reflect.Type
	create Creator
	inputs []Path

	mu    sync.Mutex   // serializes transitions of this node
	state atomic.Int32 // current State
	value any          // set before state is published as Created
}

var _ Handle = (*Node)(nil)

// Path returns the node address.
func (n *Node) Path() Path { return n.path }

// Type returns the declared type.
func (n *Node) Type() reflect.Type { return n.typ }

// State returns the current lifecycle state.
func (n *Node) State() State { return State(n.state.Load()) }

// Inputs returns a copy of the declared inputs.
func (n *Node) Inputs() []Path { return slices.Clone(n.inputs) }

// Value returns the created value, or nil before the node reached Created.
func (n *Node) Value() any {
	if n.State() < Created {
		return nil
	}

	return n.value
}

// Registry is the declarative object graph.
type Registry struct {
	mu       sync.RWMutex
	nodes    map[Path]*Node
	children map[Path][]Path // parent → sorted child paths
	bindings map[Path][]Binding

	flights     singleflight.Group
	transitions atomic.Uint64

	logger      *zap.Logger
	concurrency int
}

// NewRegistry creates an empty graph.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		nodes:    make(map[Path]*Node),
		children: make(map[Path][]Path),
		bindings: make(map[Path][]Binding),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register declares a node in state Registered.
//
// Errors:
//   - ErrInvalidPath: reg.Path or one of reg.Inputs is malformed.
//   - ErrDuplicateNode: reg.Path is already registered.
//   - ErrMissingParent: the parent of reg.Path is not registered.
//
// Inputs need not exist yet; a missing input fails the node's creation instead.
func (r *Registry) Register(reg Registration) error {
	if err := reg.Path.Validate(); err != nil {
		return err
	}
	for _, in := range reg.Inputs {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("input of %s: %w", reg.Path, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[reg.Path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, reg.Path)
	}
	parent := reg.Path.Parent()
	if parent != Root {
		if _, ok := r.nodes[parent]; !ok {
			return fmt.Errorf("%w: %s (for %s)", ErrMissingParent, parent, reg.Path)
		}
	}

	r.nodes[reg.Path] = &Node{
		path:   reg.Path,
		typ:    reg.Type,
		create: reg.Create,
		inputs: slices.Clone(reg.Inputs),
	}
	siblings := r.children[parent]
	i, _ := slices.BinarySearch(siblings, reg.Path)
	r.children[parent] = slices.Insert(slices.Clip(siblings), i, reg.Path)

	r.logger.Debug("model: node registered",
		zap.String("path", string(reg.Path)),
		zap.Stringer("type", typeStringer{reg.Type}),
		zap.Int("inputs", len(reg.Inputs)))

	return nil
}

// RegisterAll registers regs in order and stops at the first error.
func (r *Registry) RegisterAll(regs []Registration) error {
	for _, reg := range regs {
		if err := r.Register(reg); err != nil {
			return err
		}
	}

	return nil
}

// Bind installs b for every direct child of container that reaches
// GraphClosed from now on. The container does not need to exist yet.
func (r *Registry) Bind(container Path, b Binding) {
	r.mu.Lock()
	r.bindings[container] = append(slices.Clip(r.bindings[container]), b)
	r.mu.Unlock()
}

// Node returns the handle for path.
func (r *Registry) Node(path Path) (*Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[path]

	return n, ok
}

// Children returns the direct children of path in lexicographic order.
func (r *Registry) Children(path Path) []Path {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.children[path])
}

// LinksOfType lazily enumerates direct children of container whose declared
// type is assignable to t. A nil t matches every child.
//
// The child list is snapshotted when iteration starts; nodes registered
// afterwards are not yielded.
func (r *Registry) LinksOfType(container Handle, t reflect.Type) iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		if container == nil {
			return
		}
		for _, p := range r.Children(container.Path()) {
			n, ok := r.Node(p)
			if !ok || !assignable(n.typ, t) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// assignable reports whether a value of the declared type can be used as want.
func assignable(declared, want reflect.Type) bool {
	if want == nil {
		return true
	}
	if declared == nil {
		return false
	}

	return declared.AssignableTo(want)
}

// Stats returns a snapshot of node counts per state.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := Stats{
		Nodes:       len(r.nodes),
		ByState:     make(map[State]int, len(stateNames)),
		Transitions: r.transitions.Load(),
	}
	for _, n := range r.nodes {
		st.ByState[n.State()]++
	}
	for _, bs := range r.bindings {
		st.Bindings += len(bs)
	}

	return st
}

func (r *Registry) bindingsFor(container Path) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.bindings[container]
}

// typeStringer renders a possibly-nil reflect.Type for logs.
type typeStringer struct{ t reflect.Type }

func (s typeStringer) String() string {
	if s.t == nil {
		return "<untyped>"
	}

	return s.t.String()
}

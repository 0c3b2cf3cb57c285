// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Lifecycle states, node handles, registrations, errors and options.

package model

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Sentinel errors for model operations.
var (
	// ErrInvalidPath indicates an empty path or a path with an empty segment.
	ErrInvalidPath = errors.New("model: invalid path")

	// ErrDuplicateNode indicates Register was called twice for one path.
	ErrDuplicateNode = errors.New("model: node already registered")

	// ErrMissingParent indicates Register was called before the parent path was registered.
	ErrMissingParent = errors.New("model: parent node not registered")

	// ErrUnknownNode indicates a request for a path that was never registered.
	ErrUnknownNode = errors.New("model: unknown node")

	// ErrCycleDetected indicates a node transitively waits on itself.
	ErrCycleDetected = errors.New("model: cycle detected")

	// ErrBindingFailed indicates a container binding rejected a realized child.
	ErrBindingFailed = errors.New("model: container binding failed")

	// ErrInvalidState indicates a state outside Registered..GraphClosed.
	ErrInvalidState = errors.New("model: invalid state")
)

// State is a node's position in the lifecycle. States only ever increase.
type State int32

const (
	Registered State = iota
	Discovered
	Created
	SelfClosed
	GraphClosed
)

var stateNames = [...]string{"Registered", "Discovered", "Created", "SelfClosed", "GraphClosed"}

// String implements fmt.Stringer.
func (s State) String() string {
	if s.Valid() {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", int32(s))
}

// Valid reports whether s is a defined lifecycle state.
func (s State) Valid() bool { return s >= Registered && s <= GraphClosed }

// Handle is a read-only reference to a node.
type Handle interface {
	Path() Path
	Type() reflect.Type
	State() State
}

// Creator is a rule that computes the value of a node. It runs once, after
// every input of the node has reached GraphClosed.
type Creator func(path Path) (any, error)

// Registration declares one node.
type Registration struct {
	// Path is the node address; its parent must already be registered.
	Path Path

	// Type is the declared type of the node's value. LinksOfType matches against it.
	Type reflect.Type

	// Create computes the node value. Nil leaves the value nil.
	Create Creator

	// Inputs are paths that must reach GraphClosed before Create runs.
	Inputs []Path
}

// Binding observes children of a container reaching GraphClosed. It is called
// once per child, with the child's path and non-nil value.
type Binding func(path Path, value any) error

// GraphResolutionError reports a node that could not reach a requested state.
type GraphResolutionError struct {
	Path  Path
	State State
	Err   error
}

// Error implements error.
func (e *GraphResolutionError) Error() string {
	return fmt.Sprintf("model: cannot advance %s to %s: %v", e.Path, e.State, e.Err)
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *GraphResolutionError) Unwrap() error { return e.Err }

// Stats is a snapshot of the registry.
type Stats struct {
	Nodes       int
	ByState     map[State]int
	Transitions uint64
	Bindings    int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for transition diagnostics. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithConcurrency bounds the number of goroutines RealizeEach runs at once.
// n <= 0 means unbounded.
func WithConcurrency(n int) Option {
	return func(r *Registry) { r.concurrency = n }
}

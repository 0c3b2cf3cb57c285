// Package model provides a thread-safe declarative object graph: nodes are
// registered by hierarchical Path with a declared reflect.Type and an
// optional creation rule, and are advanced through a fixed lifecycle only
// when somebody asks for them.
//
// Lifecycle (State):
//
//	Registered  → the node is known by path and declared type only
//	Discovered  → the node has been inspected
//	Created     → every input reached GraphClosed, then the rule ran
//	SelfClosed  → the node itself is final; its children are enumerable
//	GraphClosed → every child reached GraphClosed, then container bindings fired
//
// Core operations:
//
//	Register(Registration) error                          // declare a node
//	Bind(container Path, Binding)                         // observe realized children
//	AtStateOrLater(path, state) (Handle, error)           // idempotent advance
//	Realize(path) (Handle, error)                         // AtStateOrLater(path, GraphClosed)
//	RealizeEach(paths...) error                           // concurrent batch of Realize
//	LinksOfType(container Handle, t reflect.Type) iter.Seq[Handle]
//
// Concurrency:
//
//	The node catalog is guarded by one sync.RWMutex. Transitions of a single
//	node are serialized by that node's mutex, and concurrent requests for the
//	same (path, state) are coalesced with singleflight, so a rule runs at
//	most once per node no matter how many goroutines ask for it.
//
// Dependencies and cycles:
//
//	Before a node is advanced past Discovered, everything its transition will
//	wait on (inputs, and children when closing the graph) is checked with a
//	three-color DFS. A back-edge fails the request with ErrCycleDetected
//	instead of deadlocking.
//
// Errors:
//
//	Every failed advance is a *GraphResolutionError naming the path and the
//	requested state; errors.Is reaches ErrUnknownNode, ErrCycleDetected,
//	ErrBindingFailed or the rule's own error.
package model

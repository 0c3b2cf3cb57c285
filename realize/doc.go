// Package realize provides Collection, a typed named-collection view that can
// force every rule-backed member of its type to materialize exactly once.
//
// A Collection wraps a collection.Collection[T] and forwards every operation
// to it unchanged. It adds one operation, RealizeAll, which asks a model graph
// for the container node at the bound path (advanced to SelfClosed so its
// children are known), enumerates the children whose declared type is
// assignable to T, and advances each to GraphClosed. Populating the wrapped
// collection is the graph's job (container bindings); the decorator never
// mutates it.
//
// Realization guard (RealizationState):
//
//	Pending ──CAS──▶ Realizing ──ok──▶ Done
//	   ▲                 │
//	   └──error/panic────┘
//
// Policy:
//
//   - Realize and wait: a caller that loses the CAS blocks until the running
//     attempt finishes and returns that attempt's error.
//   - Once Done, RealizeAll returns nil without consulting the graph.
//   - A failed attempt returns the guard to Pending; the next call retries.
//     The graph keeps every child realized before the failure, and children
//     already at GraphClosed are skipped, so a retry only does what is left.
//   - A panic during the walk also returns the guard to Pending. The
//     panicking caller sees the panic; waiters get ErrPanicked.
//   - Nested calls: a listener or rule that calls RealizeAll on the same
//     Collection while it is walking (on the walking goroutine) gets nil at
//     once. The members it asks for are still being realized by the outer
//     call. A rule that hands such a call to another goroutine and waits for
//     it deadlocks; nesting is only recognized on the walking goroutine.
//
// Errors from the graph (typically *model.GraphResolutionError) are returned
// unmodified. Lookup errors (collection.ErrUnknownMember) come straight from
// the wrapped collection.
package realize

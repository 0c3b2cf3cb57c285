// SPDX-License-Identifier: MIT
//
// File: view.go
// Role: Untyped live views and typed narrowing.
//
// A View never copies members; it is a (store, predicate) pair. Narrowing
// composes predicates, so a view of a view still reads the original store.

package collection

// View is an untyped, live window onto a backing store.
type View struct {
	store *store
	keep  Predicate // nil keeps every member
}

// Accepts reports whether m is visible through the view.
func (v View) Accepts(m Named) bool {
	return v.keep == nil || v.keep(m)
}

// Narrow returns a view that additionally requires pred.
func (v View) Narrow(pred Predicate) View {
	if pred == nil {
		return v
	}
	parent := v

	return View{store: v.store, keep: func(m Named) bool { return parent.Accepts(m) && pred(m) }}
}

// Shares reports whether both views read the same backing store.
func (v View) Shares(other View) bool {
	return v.store != nil && v.store == other.store
}

// typeFilter accepts members whose dynamic type is S.
func typeFilter[S Named]() Predicate {
	return func(m Named) bool {
		_, ok := m.(S)
		return ok
	}
}

// WithType returns a live view of c narrowed to members of type S.
// The result shares c's store: members added through either are visible to both
// when their predicates accept them.
//
// Complexity: O(1). Reads through the result cost O(n) predicate evaluations.
func WithType[S Named](c Viewer) *Set[S] {
	return &Set[S]{view: c.View().Narrow(typeFilter[S]())}
}

// WithTypeEach narrows c to S and registers fn for every current and future
// member of the narrowed view. The registration lives as long as the store.
func WithTypeEach[S Named](c Viewer, fn func(S)) *Set[S] {
	s := WithType[S](c)
	s.ConfigureEach(fn)

	return s
}

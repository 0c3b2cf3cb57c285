// SPDX-License-Identifier: MIT
//
// File: set.go
// Role: Set[T], the concrete typed Collection over a shared store.
//
// Determinism:
//   - Every enumeration is in lexicographic name order.
//
// Concurrency:
//   - Safe for concurrent use; see store.go for the locking model.
//   - Predicates are evaluated on snapshots, outside the store lock.

package collection

import (
	"fmt"
	"iter"
)

// Set is a typed, live view of a named collection.
type Set[T Named] struct {
	view View
}

var _ Collection[Named] = (*Set[Named])(nil)

// NewSet creates an empty backing store and returns a typed view over it.
func NewSet[T Named]() *Set[T] {
	return &Set[T]{view: View{store: newStore(), keep: typeFilter[T]()}}
}

// View returns the untyped view behind s.
func (s *Set[T]) View() View { return s.view }

// visible returns the members accepted by the view, in name order.
func (s *Set[T]) visible() []T {
	all := s.view.store.snapshot()
	out := make([]T, 0, len(all))
	for _, m := range all {
		if s.view.Accepts(m) {
			out = append(out, m.(T))
		}
	}

	return out
}

// lookup returns the visible member named name without running rules.
func (s *Set[T]) lookup(name string) (T, bool) {
	var zero T
	m, ok := s.view.store.get(name)
	if !ok || !s.view.Accepts(m) {
		return zero, false
	}

	return m.(T), true
}

// Contains reports whether a member with v's name is visible.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.lookup(v.Name())
	return ok
}

// ContainsAll reports whether every vs is visible. Empty input ⇒ true.
func (s *Set[T]) ContainsAll(vs ...T) bool {
	for _, v := range vs {
		if !s.Contains(v) {
			return false
		}
	}

	return true
}

// Size returns the number of visible members. Complexity: O(n).
func (s *Set[T]) Size() int {
	n := 0
	for _, m := range s.view.store.snapshot() {
		if s.view.Accepts(m) {
			n++
		}
	}

	return n
}

// IsEmpty reports whether no member is visible.
func (s *Set[T]) IsEmpty() bool {
	for _, m := range s.view.store.snapshot() {
		if s.view.Accepts(m) {
			return false
		}
	}

	return true
}

// All iterates visible members in name order over a snapshot taken when
// iteration starts.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.visible() {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns the visible members in name order.
func (s *Set[T]) Slice() []T { return s.visible() }

// GetByName returns the visible member named name, running rules on a miss.
// Missing ⇒ ErrUnknownMember.
func (s *Set[T]) GetByName(name string) (T, error) {
	v, ok := s.FindByName(name)
	if !ok {
		return v, fmt.Errorf("%w: %q", ErrUnknownMember, name)
	}

	return v, nil
}

// GetAt is an alias of GetByName.
func (s *Set[T]) GetAt(name string) (T, error) { return s.GetByName(name) }

// FindByName returns the visible member named name. On a miss the store's
// rules are applied for name and the lookup is repeated once.
func (s *Set[T]) FindByName(name string) (T, bool) {
	if v, ok := s.lookup(name); ok {
		return v, true
	}
	// A member hidden by this view's predicate is not a miss; rules only
	// run for names the store has never seen.
	if _, exists := s.view.store.get(name); exists {
		var zero T
		return zero, false
	}
	if !s.view.store.applyRules(name) {
		var zero T
		return zero, false
	}

	return s.lookup(name)
}

// Names returns visible member names in lexicographic order.
func (s *Set[T]) Names() []string {
	vs := s.visible()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name()
	}

	return out
}

// AsMap returns a fresh name → member map of the visible members.
func (s *Set[T]) AsMap() map[string]T {
	vs := s.visible()
	out := make(map[string]T, len(vs))
	for _, v := range vs {
		out[v.Name()] = v
	}

	return out
}

// Namer returns the function used to name members.
func (s *Set[T]) Namer() Namer[T] {
	return func(v T) string { return v.Name() }
}

// Matching returns a live view of the members accepted by pred.
func (s *Set[T]) Matching(pred func(T) bool) Collection[T] {
	return &Set[T]{view: s.view.Narrow(func(m Named) bool { return pred(m.(T)) })}
}

// Add inserts v into the backing store.
//
// Returns:
//   - (true, nil) when v was added; added-listeners have run.
//   - (false, nil) when a member with the same name already exists.
//   - ErrEmptyName when v.Name() == "".
//   - ErrRejected when this view's predicate does not accept v.
func (s *Set[T]) Add(v T) (bool, error) {
	m := Named(v)
	if m.Name() == "" {
		return false, ErrEmptyName
	}
	if !s.view.Accepts(m) {
		return false, fmt.Errorf("%w: %q", ErrRejected, m.Name())
	}
	added, ls := s.view.store.insert(m)
	if added {
		notify(ls, m)
	}

	return added, nil
}

// AddAll adds every member of vs and reports whether any was added.
// The first error stops the batch; members added before it stay.
func (s *Set[T]) AddAll(vs ...T) (bool, error) {
	changed := false
	for _, v := range vs {
		added, err := s.Add(v)
		if err != nil {
			return changed, err
		}
		changed = changed || added
	}

	return changed, nil
}

// Remove deletes the visible member with v's name.
func (s *Set[T]) Remove(v T) bool {
	return s.removeName(v.Name())
}

func (s *Set[T]) removeName(name string) bool {
	if _, ok := s.lookup(name); !ok {
		return false
	}
	m, ok, ls := s.view.store.delete(name)
	if ok {
		notify(ls, m)
	}

	return ok
}

// RemoveAll deletes every visible member named in vs and reports whether any was removed.
func (s *Set[T]) RemoveAll(vs ...T) bool {
	changed := false
	for _, v := range vs {
		changed = s.removeName(v.Name()) || changed
	}

	return changed
}

// RetainAll deletes every visible member not named in vs.
func (s *Set[T]) RetainAll(vs ...T) bool {
	keep := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		keep[v.Name()] = struct{}{}
	}
	changed := false
	for _, v := range s.visible() {
		if _, ok := keep[v.Name()]; !ok {
			changed = s.removeName(v.Name()) || changed
		}
	}

	return changed
}

// Clear deletes every visible member. Members hidden by the view stay.
func (s *Set[T]) Clear() {
	for _, v := range s.visible() {
		s.removeName(v.Name())
	}
}

// AddRule registers r on the backing store and returns it.
func (s *Set[T]) AddRule(r Rule) Rule {
	s.view.store.addRule(r)
	return r
}

// AddRuleFunc registers a rule built from description and fn.
func (s *Set[T]) AddRuleFunc(description string, fn func(name string)) Rule {
	return s.AddRule(NewRule(description, fn))
}

// Rules returns the registered rules in registration order.
func (s *Set[T]) Rules() []Rule { return s.view.store.ruleSnapshot() }

// WhenObjectAdded calls fn for every member added later and visible through s.
func (s *Set[T]) WhenObjectAdded(fn func(T)) func() {
	cancel, _ := s.view.store.subscribe(onAdded, s.view.Accepts, func(m Named) { fn(m.(T)) }, false)
	return cancel
}

// WhenObjectRemoved calls fn for every visible member removed later.
func (s *Set[T]) WhenObjectRemoved(fn func(T)) func() {
	cancel, _ := s.view.store.subscribe(onRemoved, s.view.Accepts, func(m Named) { fn(m.(T)) }, false)
	return cancel
}

// ConfigureEach calls fn for every current visible member, then for every
// member added later. No member is seen twice or skipped by a concurrent Add.
func (s *Set[T]) ConfigureEach(fn func(T)) func() {
	cancel, existing := s.view.store.subscribe(onAdded, s.view.Accepts, func(m Named) { fn(m.(T)) }, true)
	for _, m := range existing {
		if s.view.Accepts(m) {
			fn(m.(T))
		}
	}

	return cancel
}

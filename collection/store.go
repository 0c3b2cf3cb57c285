// SPDX-License-Identifier: MIT
//
// File: store.go
// Role: Backing store shared by every view of one collection.
//
// Determinism:
//   - names is kept sorted; snapshots are returned in name order.
//
// Concurrency:
//   - mu guards members, names, rules, listener slices and the rule guard.
//   - Listener slices are copy-on-write so a snapshot taken under the lock
//     can be iterated after the lock is released.
//   - No user callback ever runs while mu is held.

package collection

import (
	"slices"
	"sync"
)

// listenerKind selects which listener list a subscription goes to.
type listenerKind int

const (
	onAdded listenerKind = iota
	onRemoved
)

// listener is one registered callback together with the view predicate it was registered through.
type listener struct {
	id   uint64
	keep Predicate
	fn   func(Named)
}

// store is the single source of truth behind every view.
type store struct {
	mu sync.RWMutex

	members map[string]Named // name → member
	names   []string         // sorted member names

	rules    []Rule
	applying map[string]struct{} // names currently being resolved by rules

	added   []listener
	removed []listener
	nextID  uint64
}

func newStore() *store {
	return &store{
		members:  make(map[string]Named),
		applying: make(map[string]struct{}),
	}
}

// snapshot returns all members in name order.
func (s *store) snapshot() []Named {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Named, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.members[name])
	}

	return out
}

// get returns the member registered under name.
func (s *store) get(name string) (Named, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[name]

	return m, ok
}

// insert registers m unless its name is taken. It returns the added-listener
// snapshot to notify once the lock is released.
func (s *store) insert(m Named) (bool, []listener) {
	name := m.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[name]; exists {
		return false, nil
	}
	s.members[name] = m
	i, _ := slices.BinarySearch(s.names, name)
	s.names = slices.Insert(s.names, i, name)

	return true, s.added
}

// delete removes the member registered under name and returns it together
// with the removed-listener snapshot.
func (s *store) delete(name string) (Named, bool, []listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[name]
	if !ok {
		return nil, false, nil
	}
	delete(s.members, name)
	if i, found := slices.BinarySearch(s.names, name); found {
		s.names = slices.Delete(s.names, i, i+1)
	}

	return m, true, s.removed
}

// subscribe registers fn under kind. When withSnapshot is set the current
// members are captured under the same lock, so the caller can replay them
// without missing or duplicating a concurrent insert.
func (s *store) subscribe(kind listenerKind, keep Predicate, fn func(Named), withSnapshot bool) (func(), []Named) {
	s.mu.Lock()
	s.nextID++
	l := listener{id: s.nextID, keep: keep, fn: fn}
	switch kind {
	case onAdded:
		s.added = append(slices.Clip(s.added), l)
	case onRemoved:
		s.removed = append(slices.Clip(s.removed), l)
	}

	var existing []Named
	if withSnapshot {
		existing = make([]Named, 0, len(s.names))
		for _, name := range s.names {
			existing = append(existing, s.members[name])
		}
	}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() { s.unsubscribe(kind, l.id) })
	}

	return cancel, existing
}

func (s *store) unsubscribe(kind listenerKind, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := func(l listener) bool { return l.id == id }
	switch kind {
	case onAdded:
		s.added = slices.DeleteFunc(slices.Clone(s.added), drop)
	case onRemoved:
		s.removed = slices.DeleteFunc(slices.Clone(s.removed), drop)
	}
}

func (s *store) addRule(r Rule) {
	s.mu.Lock()
	s.rules = append(slices.Clip(s.rules), r)
	s.mu.Unlock()
}

func (s *store) ruleSnapshot() []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.rules)
}

// applyRules runs every rule for name until a member with that name exists.
// It returns false without running anything when rules for name are already
// being applied further up the call stack.
func (s *store) applyRules(name string) bool {
	s.mu.Lock()
	if _, busy := s.applying[name]; busy || len(s.rules) == 0 {
		s.mu.Unlock()
		return false
	}
	s.applying[name] = struct{}{}
	rules := s.rules
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.applying, name)
		s.mu.Unlock()
	}()

	for _, r := range rules {
		r.Apply(name)
		if _, ok := s.get(name); ok {
			break
		}
	}

	return true
}

// notify calls every listener whose predicate accepts m, in registration order.
func notify(ls []listener, m Named) {
	for _, l := range ls {
		if l.keep == nil || l.keep(m) {
			l.fn(m)
		}
	}
}

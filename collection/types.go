// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Member contract, capability interfaces, rules, sentinel errors.
//
// Collection[T] is composed from small capability sets so that decorators
// can implement the full surface by delegation and remain substitutable
// anywhere a Collection[T] is expected.

package collection

import (
	"errors"
	"iter"
)

// Sentinel errors for collection operations.
var (
	// ErrEmptyName indicates a member whose Name() is the empty string.
	ErrEmptyName = errors.New("collection: member name is empty")

	// ErrUnknownMember indicates a named lookup found no member, even after rules ran.
	ErrUnknownMember = errors.New("collection: unknown member")

	// ErrRejected indicates Add was called on a view whose predicate does not accept the member.
	ErrRejected = errors.New("collection: member rejected by view")
)

// Named is implemented by every collection member. Names are unique within a store.
type Named interface {
	Name() string
}

// Predicate decides whether a member is visible through a view.
type Predicate func(Named) bool

// Namer extracts the name of a member.
type Namer[T Named] func(T) string

// Rule resolves members on demand. Apply is invoked with a name that was not
// found by a lookup; it typically adds a member with that name.
type Rule interface {
	Description() string
	Apply(name string)
}

// RuleFunc adapts a plain function into a Rule.
type RuleFunc struct {
	desc string
	fn   func(name string)
}

// NewRule returns a Rule with the given description that calls fn.
func NewRule(description string, fn func(name string)) *RuleFunc {
	return &RuleFunc{desc: description, fn: fn}
}

// Description returns the human readable rule description.
func (r *RuleFunc) Description() string { return r.desc }

// Apply calls the wrapped function. A nil function is a no-op.
func (r *RuleFunc) Apply(name string) {
	if r.fn != nil {
		r.fn(name)
	}
}

// String implements fmt.Stringer.
func (r *RuleFunc) String() string { return "Rule: " + r.desc }

// Reader is the read-only membership surface.
type Reader[T Named] interface {
	Contains(v T) bool
	ContainsAll(vs ...T) bool
	Size() int
	IsEmpty() bool
	All() iter.Seq[T]
	Slice() []T
}

// Lookup is the named-lookup surface.
type Lookup[T Named] interface {
	GetByName(name string) (T, error)
	GetAt(name string) (T, error)
	FindByName(name string) (T, bool)
	Names() []string
	AsMap() map[string]T
	Namer() Namer[T]
}

// Mutator is the add/remove surface.
type Mutator[T Named] interface {
	Add(v T) (bool, error)
	AddAll(vs ...T) (bool, error)
	Remove(v T) bool
	RemoveAll(vs ...T) bool
	RetainAll(vs ...T) bool
	Clear()
}

// Notifier registers callbacks for future changes. Every registration
// returns a function that removes it again.
type Notifier[T Named] interface {
	WhenObjectAdded(fn func(T)) (cancel func())
	WhenObjectRemoved(fn func(T)) (cancel func())
	ConfigureEach(fn func(T)) (cancel func())
}

// RuleSet is the rule registration surface. Rules are shared by every view
// of the same store.
type RuleSet interface {
	AddRule(r Rule) Rule
	AddRuleFunc(description string, fn func(name string)) Rule
	Rules() []Rule
}

// Viewer exposes the untyped view behind a typed collection. WithType uses it
// to narrow any Collection, including decorators, without copying data.
type Viewer interface {
	View() View
}

// Collection is the full named/typed collection contract.
type Collection[T Named] interface {
	Reader[T]
	Lookup[T]
	Mutator[T]
	Notifier[T]
	RuleSet
	Viewer

	// Matching returns a live view containing only members accepted by pred.
	Matching(pred func(T) bool) Collection[T]
}

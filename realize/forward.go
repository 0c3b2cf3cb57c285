// SPDX-License-Identifier: MIT
//
// File: forward.go
// Role: The collection.Collection[T] surface, forwarded verbatim.
//
// Nothing here filters, orders, caches or realizes. Results are exactly what
// the wrapped collection returns, before and after RealizeAll.

package realize

import (
	"iter"

	"github.com/pickypg/gradle/collection"
)

// Reader.

// Contains reports whether the wrapped collection contains v.
func (c *Collection[T]) Contains(v T) bool { return c.delegate.Contains(v) }

// ContainsAll reports whether the wrapped collection contains every vs.
func (c *Collection[T]) ContainsAll(vs ...T) bool { return c.delegate.ContainsAll(vs...) }

// Size returns the size of the wrapped collection.
func (c *Collection[T]) Size() int { return c.delegate.Size() }

// IsEmpty reports whether the wrapped collection is empty.
func (c *Collection[T]) IsEmpty() bool { return c.delegate.IsEmpty() }

// All iterates the wrapped collection.
func (c *Collection[T]) All() iter.Seq[T] { return c.delegate.All() }

// Slice returns the members of the wrapped collection.
func (c *Collection[T]) Slice() []T { return c.delegate.Slice() }

// Lookup.

// GetByName looks name up in the wrapped collection.
func (c *Collection[T]) GetByName(name string) (T, error) { return c.delegate.GetByName(name) }

// GetAt looks name up in the wrapped collection.
func (c *Collection[T]) GetAt(name string) (T, error) { return c.delegate.GetAt(name) }

// FindByName looks name up in the wrapped collection.
func (c *Collection[T]) FindByName(name string) (T, bool) { return c.delegate.FindByName(name) }

// Names returns the member names of the wrapped collection.
func (c *Collection[T]) Names() []string { return c.delegate.Names() }

// AsMap returns the wrapped collection as a name → member map.
func (c *Collection[T]) AsMap() map[string]T { return c.delegate.AsMap() }

// Namer returns the wrapped collection's namer.
func (c *Collection[T]) Namer() collection.Namer[T] { return c.delegate.Namer() }

// Views.

// View returns the wrapped collection's view, so collection.WithType can
// narrow a Collection like any other.
func (c *Collection[T]) View() collection.View { return c.delegate.View() }

// Matching returns the wrapped collection's filtered view. The result is not
// decorated: it has no RealizeAll of its own.
func (c *Collection[T]) Matching(pred func(T) bool) collection.Collection[T] {
	return c.delegate.Matching(pred)
}

// Mutator.

// Add adds v to the wrapped collection.
func (c *Collection[T]) Add(v T) (bool, error) { return c.delegate.Add(v) }

// AddAll adds vs to the wrapped collection.
func (c *Collection[T]) AddAll(vs ...T) (bool, error) { return c.delegate.AddAll(vs...) }

// Remove removes v from the wrapped collection.
func (c *Collection[T]) Remove(v T) bool { return c.delegate.Remove(v) }

// RemoveAll removes vs from the wrapped collection.
func (c *Collection[T]) RemoveAll(vs ...T) bool { return c.delegate.RemoveAll(vs...) }

// RetainAll keeps only vs in the wrapped collection.
func (c *Collection[T]) RetainAll(vs ...T) bool { return c.delegate.RetainAll(vs...) }

// Clear empties the wrapped collection.
func (c *Collection[T]) Clear() { c.delegate.Clear() }

// RuleSet.

// AddRule registers r on the wrapped collection.
func (c *Collection[T]) AddRule(r collection.Rule) collection.Rule { return c.delegate.AddRule(r) }

// AddRuleFunc registers a rule built from description and fn on the wrapped collection.
func (c *Collection[T]) AddRuleFunc(description string, fn func(name string)) collection.Rule {
	return c.delegate.AddRuleFunc(description, fn)
}

// Rules returns the rules of the wrapped collection.
func (c *Collection[T]) Rules() []collection.Rule { return c.delegate.Rules() }

// Notifier.

// WhenObjectAdded registers fn on the wrapped collection.
func (c *Collection[T]) WhenObjectAdded(fn func(T)) func() { return c.delegate.WhenObjectAdded(fn) }

// WhenObjectRemoved registers fn on the wrapped collection.
func (c *Collection[T]) WhenObjectRemoved(fn func(T)) func() { return c.delegate.WhenObjectRemoved(fn) }

// ConfigureEach registers fn on the wrapped collection.
func (c *Collection[T]) ConfigureEach(fn func(T)) func() { return c.delegate.ConfigureEach(fn) }

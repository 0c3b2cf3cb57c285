// SPDX-License-Identifier: MIT
//
// File: typetable.go
// Role: Name → (reflect.Type, factory) table used to resolve declarations.

package model

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ErrDuplicateType indicates a type name registered twice.
var ErrDuplicateType = errors.New("model: type name already registered")

// TypeEntry binds a declaration type name to a Go type and an optional factory.
type TypeEntry struct {
	Name    string
	Type    reflect.Type
	Factory Creator
}

// TypeTable is a concurrency-safe registry of TypeEntry values.
type TypeTable struct {
	mu      sync.RWMutex
	entries map[string]TypeEntry
}

// NewTypeTable returns an empty table.
func NewTypeTable() *TypeTable {
	return &TypeTable{entries: make(map[string]TypeEntry)}
}

// Register associates name with typ and factory. Re-registering a name fails.
func (t *TypeTable) Register(name string, typ reflect.Type, factory Creator) error {
	if name == "" {
		return fmt.Errorf("%w: empty type name", ErrInvalidDeclaration)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateType, name)
	}
	t.entries[name] = TypeEntry{Name: name, Type: typ, Factory: factory}

	return nil
}

// Lookup returns the entry registered under name.
func (t *TypeTable) Lookup(name string) (TypeEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[name]

	return e, ok
}

// Entries returns every entry sorted by name.
func (t *TypeTable) Entries() []TypeEntry {
	t.mu.RLock()
	out := make([]TypeEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Len returns the number of entries.
func (t *TypeTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}

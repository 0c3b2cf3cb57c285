// SPDX-License-Identifier: MIT
//
// File: path.go
// Role: Hierarchical node addresses.

package model

import (
	"fmt"
	"strings"
)

// pathSeparator joins path segments.
const pathSeparator = "."

// Path is a dot-separated hierarchical address, e.g. "tasks.compile".
// The empty Path is the root and is never registered.
type Path string

// Root is the implicit parent of every top-level node.
const Root Path = ""

// Child returns p extended by one segment.
func (p Path) Child(name string) Path {
	if p == Root {
		return Path(name)
	}

	return p + pathSeparator + Path(name)
}

// Parent returns p without its last segment; Root for top-level paths.
func (p Path) Parent() Path {
	i := strings.LastIndex(string(p), pathSeparator)
	if i < 0 {
		return Root
	}

	return p[:i]
}

// Name returns the last segment of p.
func (p Path) Name() string {
	i := strings.LastIndex(string(p), pathSeparator)

	return string(p[i+1:])
}

// Depth returns the number of segments; 0 for Root.
func (p Path) Depth() int {
	if p == Root {
		return 0
	}

	return strings.Count(string(p), pathSeparator) + 1
}

// IsDirectChildOf reports whether p is exactly one segment below parent.
func (p Path) IsDirectChildOf(parent Path) bool {
	return p != Root && p.Parent() == parent
}

// Validate rejects Root and paths with empty segments.
func (p Path) Validate() error {
	if p == Root {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	for _, seg := range strings.Split(string(p), pathSeparator) {
		if seg == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, string(p))
		}
	}

	return nil
}

// String implements fmt.Stringer.
func (p Path) String() string {
	if p == Root {
		return "<root>"
	}

	return string(p)
}

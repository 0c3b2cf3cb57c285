// SPDX-License-Identifier: MIT
//
// File: cycle.go
// Role: Three-color DFS over "waits on" edges before a node is advanced.
//
// Edges:
//   - reaching Created waits on every input reaching GraphClosed;
//   - reaching GraphClosed waits on every child reaching GraphClosed.
//
// Nodes already at GraphClosed wait on nothing and are skipped.
//
// Complexity: O(V + E) over the part of the graph reachable from the start node.

package model

import (
	"fmt"
	"strings"
)

// Visitation colors.
const (
	white = iota // not visited
	gray         // on the current DFS stack
	black        // fully explored
)

// cycleChecker holds the state of one check.
type cycleChecker struct {
	r       *Registry
	color   map[Path]int
	reached map[Path]State // highest target a black node was explored for
	stack   []Path
}

func (r *Registry) checkCycles(n *Node, target State) error {
	c := &cycleChecker{
		r:       r,
		color:   make(map[Path]int),
		reached: make(map[Path]State),
	}

	return c.visit(n, target)
}

func (c *cycleChecker) visit(n *Node, target State) error {
	switch c.color[n.path] {
	case gray:
		return c.cycleError(n.path)
	case black:
		if c.reached[n.path] >= target {
			return nil
		}
	}
	c.color[n.path] = gray
	c.stack = append(c.stack, n.path)

	for _, dep := range c.r.waitsOn(n, target) {
		d, ok := c.r.Node(dep)
		if !ok {
			return fmt.Errorf("%w: %s (required by %s)", ErrUnknownNode, dep, n.path)
		}
		if d.State() >= GraphClosed {
			continue
		}
		if err := c.visit(d, GraphClosed); err != nil {
			return err
		}
	}

	c.stack = c.stack[:len(c.stack)-1]
	c.color[n.path] = black
	c.reached[n.path] = target

	return nil
}

// cycleError renders the cycle that closes at p, e.g. "a -> b -> a".
func (c *cycleChecker) cycleError(p Path) error {
	start := 0
	for i, s := range c.stack {
		if s == p {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(c.stack)-start+1)
	for _, s := range c.stack[start:] {
		parts = append(parts, string(s))
	}
	parts = append(parts, string(p))

	return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(parts, " -> "))
}

// waitsOn lists the paths n must see at GraphClosed before reaching target.
func (r *Registry) waitsOn(n *Node, target State) []Path {
	var deps []Path
	if target >= Created && n.State() < Created {
		deps = append(deps, n.inputs...)
	}
	if target >= GraphClosed {
		deps = append(deps, r.Children(n.path)...)
	}

	return deps
}

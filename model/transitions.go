// SPDX-License-Identifier: MIT
//
// File: transitions.go
// Role: Advancing nodes through the lifecycle.
//
// Concurrency:
//   - Requests for one (path, state) pair are coalesced by singleflight.
//   - Requests for different states of one node serialize on Node.mu.
//   - A node's transition may advance other nodes (inputs, children). The
//     cycle check in cycle.go guarantees those never wait on the node itself.
//
// Failure:
//   - A failed step leaves the node at its last reached state, so a later
//     request retries only the failed step onwards.

package model

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AtStateOrLater advances the node at path to at least state and returns it.
// Nodes already at or past state are returned without any work.
//
// Errors:
//   - *GraphResolutionError wrapping ErrUnknownNode, ErrCycleDetected,
//     ErrBindingFailed, ErrInvalidState, or the error returned by a Creator.
//     When an input or child fails, its own *GraphResolutionError is returned.
func (r *Registry) AtStateOrLater(path Path, state State) (Handle, error) {
	n, err := r.advance(path, state)
	if err != nil {
		return nil, err
	}

	return n, nil
}

// Realize is AtStateOrLater(path, GraphClosed).
func (r *Registry) Realize(path Path) (Handle, error) {
	return r.AtStateOrLater(path, GraphClosed)
}

// RealizeEach realizes every path concurrently and returns the first error.
// The number of goroutines is bounded by WithConcurrency.
func (r *Registry) RealizeEach(paths ...Path) error {
	g := new(errgroup.Group)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for _, p := range paths {
		g.Go(func() error {
			_, err := r.advance(p, GraphClosed)
			return err
		})
	}

	return g.Wait()
}

func (r *Registry) advance(path Path, target State) (*Node, error) {
	if !target.Valid() {
		return nil, &GraphResolutionError{Path: path, State: target, Err: ErrInvalidState}
	}
	n, ok := r.Node(path)
	if !ok {
		return nil, &GraphResolutionError{Path: path, State: target, Err: ErrUnknownNode}
	}
	if n.State() >= target {
		return n, nil
	}
	if err := r.checkCycles(n, target); err != nil {
		return nil, &GraphResolutionError{Path: path, State: target, Err: err}
	}

	key := string(path) + "@" + target.String()
	if _, err, _ := r.flights.Do(key, func() (any, error) {
		return nil, r.step(n, target)
	}); err != nil {
		return nil, err
	}

	return n, nil
}

// step moves n one state at a time until it reaches target.
func (r *Registry) step(n *Node, target State) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for cur := n.State(); cur < target; cur = n.State() {
		next := cur + 1
		if err := r.enter(n, next); err != nil {
			r.logger.Debug("model: transition failed",
				zap.String("path", string(n.path)),
				zap.Stringer("state", next),
				zap.Error(err))

			return resolutionError(n.path, target, err)
		}
		n.state.Store(int32(next))
		r.transitions.Add(1)
		r.logger.Debug("model: transition",
			zap.String("path", string(n.path)),
			zap.Stringer("state", next))
	}

	return nil
}

// enter performs the work required to reach next. Caller holds n.mu.
func (r *Registry) enter(n *Node, next State) error {
	switch next {
	case Created:
		for _, in := range n.inputs {
			if _, err := r.advance(in, GraphClosed); err != nil {
				return err
			}
		}
		if n.create != nil {
			v, err := n.create(n.path)
			if err != nil {
				return err
			}
			n.value = v
		}
	case GraphClosed:
		for _, child := range r.Children(n.path) {
			if _, err := r.advance(child, GraphClosed); err != nil {
				return err
			}
		}
		return r.fireBindings(n)
	}

	return nil
}

// fireBindings hands a closed node's value to its parent's bindings.
func (r *Registry) fireBindings(n *Node) error {
	if n.value == nil {
		return nil
	}
	for _, b := range r.bindingsFor(n.path.Parent()) {
		if err := b(n.path, n.value); err != nil {
			return fmt.Errorf("%w: %w", ErrBindingFailed, err)
		}
	}

	return nil
}

// resolutionError keeps an inner *GraphResolutionError as is and wraps anything else.
func resolutionError(path Path, state State, err error) error {
	var gre *GraphResolutionError
	if errors.As(err, &gre) {
		return err
	}

	return &GraphResolutionError{Path: path, State: state, Err: err}
}

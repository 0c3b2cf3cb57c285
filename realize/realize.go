// SPDX-License-Identifier: MIT
//
// File: realize.go
// Role: Collection construction and the one-shot RealizeAll.
//
// Concurrency:
//   - state is the atomic guard; the Pending → Realizing CAS elects the one
//     goroutine that walks the graph.
//   - mu guards current, the attempt losers wait on. It is never held while
//     the graph is being walked.
//   - The walk runs listeners and rules synchronously on the winner's
//     goroutine. A RealizeAll issued from there is nested, not a loser, and
//     returns nil at once instead of waiting on its own attempt.
//   - The attempt is finished in a deferred call, so a panicking rule still
//     releases the guard and every waiter.

package realize

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pickypg/gradle/collection"
	"github.com/pickypg/gradle/model"
)

// ErrPanicked is returned to callers waiting on an attempt whose walk panicked.
// The panicking caller itself sees the original panic.
var ErrPanicked = errors.New("realize: realization panicked")

// attempt is one run of the graph walk. done is closed once err is final.
type attempt struct {
	done    chan struct{}
	err     error
	owner   uint64       // goroutine walking the graph
	waiters atomic.Int32 // losers blocked on done
}

// Collection decorates a collection.Collection[T] bound to one container path
// and the runtime type T.
type Collection[T collection.Named] struct {
	delegate collection.Collection[T]
	graph    Graph
	path     model.Path
	typ      reflect.Type
	logger   *zap.Logger

	state   atomic.Int32 // RealizationState
	mu      sync.Mutex
	current *attempt
}

var _ collection.Collection[collection.Named] = (*Collection[collection.Named])(nil)

// New returns a decorator over delegate whose RealizeAll realizes the
// children of path in graph that are declared as T.
//
// delegate and graph must be non-nil; New panics otherwise.
func New[T collection.Named](delegate collection.Collection[T], graph Graph, path model.Path, opts ...Option) *Collection[T] {
	if delegate == nil {
		panic("realize: nil delegate collection")
	}
	if graph == nil {
		panic("realize: nil graph")
	}
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Collection[T]{
		delegate: delegate,
		graph:    graph,
		path:     path,
		typ:      reflect.TypeFor[T](),
		logger:   o.logger,
	}
}

// Path returns the bound container path.
func (c *Collection[T]) Path() model.Path { return c.path }

// Type returns the bound runtime type.
func (c *Collection[T]) Type() reflect.Type { return c.typ }

// State returns the current guard state.
func (c *Collection[T]) State() RealizationState {
	return RealizationState(c.state.Load())
}

// Delegate returns the wrapped collection.
func (c *Collection[T]) Delegate() collection.Collection[T] { return c.delegate }

// RealizeAll forces every rule-backed child of the bound path declared as T
// to GraphClosed. See the package documentation for the concurrency and
// failure policy.
//
// After a nil return from a non-nested call, every type-matching member
// realizable at that point is present in the wrapped collection. A nested
// call (made by a listener or rule while this collection is walking the
// graph) returns nil immediately.
func (c *Collection[T]) RealizeAll() error {
	if c.State() == Done {
		return nil
	}

	gid := goroutineID()
	c.mu.Lock()
	if c.State() == Done {
		c.mu.Unlock()
		return nil
	}
	if !c.state.CompareAndSwap(int32(Pending), int32(Realizing)) {
		a := c.current
		if gid != 0 && a.owner == gid {
			c.mu.Unlock()
			c.logger.Debug("realize: nested call during realization",
				zap.String("path", string(c.path)),
				zap.Stringer("type", c.typ))

			return nil
		}
		// Lost the race: wait for the running attempt.
		a.waiters.Add(1)
		c.mu.Unlock()
		<-a.done

		return a.err
	}
	a := &attempt{done: make(chan struct{}), owner: gid}
	c.current = a
	c.mu.Unlock()

	c.logger.Debug("realize: realizing rule-backed members",
		zap.String("path", string(c.path)),
		zap.Stringer("type", c.typ))

	finished := false
	defer func() {
		if finished {
			return
		}
		r := recover()
		c.finish(a, fmt.Errorf("%w: %v", ErrPanicked, r))
		c.logger.Debug("realize: realization panicked",
			zap.String("path", string(c.path)),
			zap.Stringer("type", c.typ),
			zap.Any("panic", r))
		if r != nil { // nil: the walk called runtime.Goexit
			panic(r)
		}
	}()

	n, err := c.walk()
	finished = true
	c.finish(a, err)

	if err != nil {
		c.logger.Debug("realize: realization failed",
			zap.String("path", string(c.path)),
			zap.Stringer("type", c.typ),
			zap.Int("realized", n),
			zap.Error(err))

		return err
	}
	c.logger.Debug("realize: realization complete",
		zap.String("path", string(c.path)),
		zap.Stringer("type", c.typ),
		zap.Int("realized", n))

	return nil
}

// finish publishes the outcome of a: Done on success, Pending otherwise, and
// releases every waiter.
func (c *Collection[T]) finish(a *attempt, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a.err = err
	if err != nil {
		c.state.Store(int32(Pending))
	} else {
		c.state.Store(int32(Done))
	}
	close(a.done)
}

// walk advances the container to SelfClosed and every matching child to
// GraphClosed, in the order the graph reports them. It returns the number of
// children it advanced.
func (c *Collection[T]) walk() (int, error) {
	container, err := c.graph.AtStateOrLater(c.path, model.SelfClosed)
	if err != nil {
		return 0, err
	}

	n := 0
	for child := range c.graph.LinksOfType(container, c.typ) {
		if child.State() >= model.GraphClosed {
			continue
		}
		if _, err := c.graph.AtStateOrLater(child.Path(), model.GraphClosed); err != nil {
			return n, err
		}
		n++
	}

	return n, nil
}

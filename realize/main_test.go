package realize_test

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"

	"github.com/pickypg/gradle/collection"
	"github.com/pickypg/gradle/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// PathBox is the container every stub graph is built around.
const PathBox model.Path = "box"

// NCallers is the number of goroutines racing for one RealizeAll.
const NCallers = 64

var errBoom = errors.New("boom")

// Member types. apple and pear share the fruit interface; brick does not.
type (
	fruit interface {
		collection.Named
		Sweet() bool
	}
	apple struct{ name string }
	pear  struct{ name string }
	brick struct{ name string }
)

func (a *apple) Name() string { return a.name }
func (a *apple) Sweet() bool  { return true }
func (p *pear) Name() string  { return p.name }
func (p *pear) Sweet() bool   { return false }
func (b *brick) Name() string { return b.name }

var (
	appleType = reflect.TypeFor[*apple]()
	pearType  = reflect.TypeFor[*pear]()
	brickType = reflect.TypeFor[*brick]()
)

// stubNode is a model.Handle whose state the stub graph sets directly.
type stubNode struct {
	path  model.Path
	typ   reflect.Type
	value collection.Named
	state atomic.Int32
}

func (n *stubNode) Path() model.Path   { return n.path }
func (n *stubNode) Type() reflect.Type { return n.typ }
func (n *stubNode) State() model.State { return model.State(n.state.Load()) }

// stubGraph is an instrumented Graph. It counts every AtStateOrLater call per
// path and publishes a child's value to the sink when the child first reaches
// GraphClosed, the way a container binding would.
type stubGraph struct {
	mu    sync.Mutex
	nodes map[model.Path]*stubNode
	calls map[model.Path]int
	fail  map[model.Path]error

	// before, when set, runs on every call outside the lock.
	before func(path model.Path)
	sink   collection.Mutator[collection.Named]
}

func newStubGraph(sink collection.Mutator[collection.Named]) *stubGraph {
	g := &stubGraph{
		nodes: make(map[model.Path]*stubNode),
		calls: make(map[model.Path]int),
		fail:  make(map[model.Path]error),
		sink:  sink,
	}
	g.nodes[PathBox] = &stubNode{path: PathBox}

	return g
}

// declare adds a rule-backed child of PathBox carrying v.
func (g *stubGraph) declare(v collection.Named) model.Path {
	p := PathBox.Child(v.Name())
	g.mu.Lock()
	g.nodes[p] = &stubNode{path: p, typ: reflect.TypeOf(v), value: v}
	g.mu.Unlock()

	return p
}

// failOn makes every advance of p fail with err; nil clears it.
func (g *stubGraph) failOn(p model.Path, err error) {
	g.mu.Lock()
	if err == nil {
		delete(g.fail, p)
	} else {
		g.fail[p] = err
	}
	g.mu.Unlock()
}

func (g *stubGraph) callsFor(p model.Path) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.calls[p]
}

func (g *stubGraph) AtStateOrLater(path model.Path, state model.State) (model.Handle, error) {
	g.mu.Lock()
	g.calls[path]++
	n, ok := g.nodes[path]
	failure := g.fail[path]
	before := g.before
	g.mu.Unlock()

	if before != nil {
		before(path)
	}
	if !ok {
		return nil, &model.GraphResolutionError{Path: path, State: state, Err: model.ErrUnknownNode}
	}
	if failure != nil {
		return nil, &model.GraphResolutionError{Path: path, State: state, Err: failure}
	}
	if n.State() >= state {
		return n, nil
	}
	n.state.Store(int32(state))
	if state == model.GraphClosed && n.value != nil && g.sink != nil {
		if _, err := g.sink.Add(n.value); err != nil {
			return nil, &model.GraphResolutionError{Path: path, State: state, Err: err}
		}
	}

	return n, nil
}

func (g *stubGraph) LinksOfType(container model.Handle, t reflect.Type) iter.Seq[model.Handle] {
	return func(yield func(model.Handle) bool) {
		g.mu.Lock()
		var kids []*stubNode
		for p, n := range g.nodes {
			if p.IsDirectChildOf(container.Path()) && n.typ != nil && n.typ.AssignableTo(t) {
				kids = append(kids, n)
			}
		}
		g.mu.Unlock()
		slices.SortFunc(kids, func(a, b *stubNode) int {
			return strings.Compare(string(a.path), string(b.path))
		})
		for _, n := range kids {
			if !yield(n) {
				return
			}
		}
	}
}

// fixture is a shared store, its typed view and a stub graph feeding it.
type fixture struct {
	all   *collection.Set[collection.Named]
	graph *stubGraph
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	all := collection.NewSet[collection.Named]()

	return &fixture{all: all, graph: newStubGraph(all)}
}

// declareApples declares n apples named apple-0 … apple-(n-1).
func (f *fixture) declareApples(n int) []model.Path {
	paths := make([]model.Path, n)
	for i := range n {
		paths[i] = f.graph.declare(&apple{name: fmt.Sprintf("apple-%d", i)})
	}

	return paths
}

func typeOf(v collection.Named) reflect.Type { return reflect.TypeOf(v) }

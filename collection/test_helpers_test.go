// Package collection_test contains fixtures shared by the collection tests.
package collection_test

import "github.com/pickypg/gradle/collection"

// Common member names used across collection tests.
const (
	NameA = "alpha"
	NameB = "bravo"
	NameC = "charlie"
	NameD = "delta"
	NameX = "x"
	NameY = "y"
	NameZ = "z"
)

// Common concurrency sizes (avoid magic numbers in test bodies).
const (
	NConcurrentAdds = 200
	NReaders        = 50
)

// thing is the broadest member type in tests.
type thing interface {
	collection.Named
	Kind() string
}

// widget and gadget are two unrelated member types sharing one store.
type widget struct{ name string }

func (w *widget) Name() string { return w.name }
func (w *widget) Kind() string { return "widget" }

type gadget struct {
	name  string
	power int
}

func (g *gadget) Name() string { return g.name }
func (g *gadget) Kind() string { return "gadget" }

func newWidget(name string) *widget { return &widget{name: name} }

func newGadget(name string, power int) *gadget { return &gadget{name: name, power: power} }

// names extracts member names in iteration order.
func names[T collection.Named](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name()
	}

	return out
}

package model_test

import (
	"fmt"
	"reflect"

	"github.com/pickypg/gradle/model"
)

// ExampleRegistry declares two rule-backed nodes and realizes one of them.
func ExampleRegistry() {
	r := model.NewRegistry()
	r.Register(model.Registration{Path: "libs"})

	str := reflect.TypeFor[string]()
	r.Register(model.Registration{
		Path:   "libs.core",
		Type:   str,
		Create: func(p model.Path) (any, error) { return "built " + p.Name(), nil },
	})
	r.Register(model.Registration{
		Path:   "libs.app",
		Type:   str,
		Inputs: []model.Path{"libs.core"},
		Create: func(p model.Path) (any, error) { return "built " + p.Name(), nil },
	})
	r.Bind("libs", func(p model.Path, v any) error {
		fmt.Println(p, "→", v)
		return nil
	})

	h, _ := r.Realize("libs.app")
	fmt.Println(h.State())

	// Output:
	// libs.core → built core
	// libs.app → built app
	// GraphClosed
}

package model_test

import (
	"reflect"
	"testing"

	"go.uber.org/goleak"

	"github.com/pickypg/gradle/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Common paths used across model tests.
const (
	PathTasks   model.Path = "tasks"
	PathCompile model.Path = "tasks.compile"
	PathTest    model.Path = "tasks.test"
	PathJar     model.Path = "tasks.jar"
)

// NConcurrentCallers is the number of goroutines racing for one node.
const NConcurrentCallers = 64

// Declared types used across model tests.
type (
	container struct{}
	artifact  struct{ name string }
	report    struct{ name string }
)

func (a *artifact) Name() string { return a.name }
func (r *report) Name() string   { return r.name }

var (
	containerType = reflect.TypeFor[*container]()
	artifactType  = reflect.TypeFor[*artifact]()
	reportType    = reflect.TypeFor[*report]()
)

// named is implemented by artifact and report.
type named interface{ Name() string }

var namedType = reflect.TypeFor[named]()

// newContainerRegistry registers PathTasks as an empty container.
func newContainerRegistry(t *testing.T, opts ...model.Option) *model.Registry {
	t.Helper()
	r := model.NewRegistry(opts...)
	if err := r.Register(model.Registration{Path: PathTasks, Type: containerType}); err != nil {
		t.Fatalf("Register(%s): %v", PathTasks, err)
	}

	return r
}

// artifactCreator returns a Creator producing *artifact named after the path.
func artifactCreator() model.Creator {
	return func(p model.Path) (any, error) { return &artifact{name: p.Name()}, nil }
}

package tasks_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/pickypg/gradle/model"
	"github.com/pickypg/gradle/realize"
	"github.com/pickypg/gradle/tasks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newContainer(t *testing.T) *tasks.Container {
	t.Helper()
	c, err := tasks.NewContainer(model.NewRegistry(model.WithLogger(zaptest.NewLogger(t))),
		tasks.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	return c
}

// TestContainer_RealizeAllDeclared: declared tasks x, y, z only appear once
// the view is realized.
func TestContainer_RealizeAllDeclared(t *testing.T) {
	c := newContainer(t)
	for _, n := range []string{"z", "x", "y"} {
		require.NoError(t, tasks.Declare(c, n, tasks.NewDefaultTask))
	}
	defaults := tasks.WithType[*tasks.DefaultTask](c)

	_, ok := defaults.FindByName("y")
	require.False(t, ok)
	require.Zero(t, defaults.Size())

	require.NoError(t, defaults.RealizeAll())

	y, ok := defaults.FindByName("y")
	require.True(t, ok)
	require.Equal(t, tasks.GroupOther, y.Group())
	if diff := cmp.Diff([]string{"x", "y", "z"}, defaults.Names()); diff != "" {
		t.Fatalf("Names() mismatch (-want +got):\n%s", diff)
	}
}

// TestContainer_TypedViews: each typed view realizes only its own kind.
func TestContainer_TypedViews(t *testing.T) {
	c := newContainer(t)
	require.NoError(t, tasks.Declare(c, "compileJava", tasks.NewCompileTask))
	require.NoError(t, tasks.Declare(c, "test", tasks.NewTestTask, "compileJava"))
	require.NoError(t, tasks.Declare(c, "compileKotlin", tasks.NewCompileTask))

	compiles := tasks.WithType[*tasks.CompileTask](c)
	require.NoError(t, compiles.RealizeAll())
	require.Equal(t, []string{"compileJava", "compileKotlin"}, compiles.Names())
	require.Equal(t, []string{"compileJava", "compileKotlin"}, c.All().Names())

	tests := tasks.WithType[*tasks.TestTask](c)
	require.Equal(t, realize.Pending, tests.State())
	require.NoError(t, tests.RealizeAll())
	tt, err := tests.GetByName("test")
	require.NoError(t, err)
	require.Equal(t, "*", tt.Filter)
	require.Equal(t, tasks.GroupVerification, tt.Group())
}

// TestContainer_All realizes every declared task regardless of kind.
func TestContainer_All(t *testing.T) {
	c := newContainer(t)
	require.NoError(t, tasks.Declare(c, "compile", tasks.NewCompileTask))
	require.NoError(t, tasks.Declare(c, "test", tasks.NewTestTask, "compile"))
	require.NoError(t, tasks.Declare(c, "clean", tasks.NewDefaultTask))

	require.NoError(t, c.All().RealizeAll())
	require.Equal(t, []string{"clean", "compile", "test"}, c.All().Names())
	require.Equal(t, realize.Done, c.All().State())
}

// TestContainer_Create adds eager tasks immediately and rejects duplicates.
func TestContainer_Create(t *testing.T) {
	c := newContainer(t)
	compile, err := tasks.NewCompileTask("compile")
	require.NoError(t, err)
	compile.AddSources("b.go", "a.go", "b.go")

	require.NoError(t, c.Create(compile))
	got, ok := tasks.WithType[*tasks.CompileTask](c).FindByName("compile")
	require.True(t, ok)
	require.Same(t, compile, got)
	require.Equal(t, []string{"a.go", "b.go"}, got.Sources)

	require.ErrorIs(t, c.Create(compile), model.ErrDuplicateNode)
	require.ErrorIs(t, tasks.Declare(c, "compile", tasks.NewDefaultTask), model.ErrDuplicateNode)
	require.ErrorIs(t, tasks.Declare(c, "", tasks.NewDefaultTask), tasks.ErrInvalidName)
}

// TestContainer_InvalidNames: empty and dotted names never reach the graph.
func TestContainer_InvalidNames(t *testing.T) {
	c := newContainer(t)
	before := c.Registry().Stats().Nodes

	for _, name := range []string{"", "a.b", ".a", "a."} {
		t.Run(name, func(t *testing.T) {
			task, err := tasks.NewDefaultTask(name)
			require.NoError(t, err)
			require.ErrorIs(t, c.Create(task), tasks.ErrInvalidName)
			require.ErrorIs(t, tasks.Declare(c, name, tasks.NewDefaultTask), tasks.ErrInvalidName)
		})
	}
	require.ErrorIs(t, tasks.Declare(c, "test", tasks.NewTestTask, "lib.compile"), tasks.ErrInvalidName)
	require.Equal(t, before, c.Registry().Stats().Nodes)
}

// TestContainer_RealizeNamed realizes only the named tasks and their inputs.
func TestContainer_RealizeNamed(t *testing.T) {
	c := newContainer(t)
	require.NoError(t, tasks.Declare(c, "compile", tasks.NewCompileTask))
	require.NoError(t, tasks.Declare(c, "test", tasks.NewTestTask, "compile"))
	require.NoError(t, tasks.Declare(c, "clean", tasks.NewDefaultTask))

	require.NoError(t, c.RealizeNamed("test"))
	require.Equal(t, []string{"compile", "test"}, c.All().Names())

	require.ErrorIs(t, c.RealizeNamed("missing"), model.ErrUnknownNode)
}

// TestContainer_CreateFailure: a failing factory fails RealizeAll and a later
// call retries it.
func TestContainer_CreateFailure(t *testing.T) {
	c := newContainer(t)
	errFlaky := errors.New("flaky")
	attempts := 0
	require.NoError(t, tasks.Declare(c, "flaky", func(name string) (*tasks.DefaultTask, error) {
		attempts++
		if attempts == 1 {
			return nil, errFlaky
		}
		return tasks.NewDefaultTask(name)
	}))
	require.NoError(t, tasks.Declare(c, "steady", tasks.NewDefaultTask))

	view := tasks.WithType[*tasks.DefaultTask](c)
	err := view.RealizeAll()
	require.ErrorIs(t, err, errFlaky)
	var gre *model.GraphResolutionError
	require.ErrorAs(t, err, &gre)
	require.Equal(t, tasks.ContainerPath.Child("flaky"), gre.Path)
	require.Equal(t, realize.Pending, view.State())

	require.NoError(t, view.RealizeAll())
	require.Equal(t, []string{"flaky", "steady"}, view.Names())
	require.Equal(t, 2, attempts)
}

// TestContainer_NotATask: a node under the container that creates something
// other than a Task fails its binding.
func TestContainer_NotATask(t *testing.T) {
	c := newContainer(t)
	require.NoError(t, c.Registry().Register(model.Registration{
		Path:   tasks.ContainerPath.Child("odd"),
		Create: func(model.Path) (any, error) { return 42, nil },
	}))

	err := c.RealizeNamed("odd")
	require.ErrorIs(t, err, tasks.ErrNotATask)
	require.ErrorIs(t, err, model.ErrBindingFailed)
}

// TestNewContainer_Twice rejects a second container in one registry.
func TestNewContainer_Twice(t *testing.T) {
	r := model.NewRegistry()
	_, err := tasks.NewContainer(r)
	require.NoError(t, err)
	_, err = tasks.NewContainer(r)
	require.ErrorIs(t, err, model.ErrDuplicateNode)
}

const declarations = `
nodes:
  - path: tasks.compileJava
    type: compile
  - path: tasks.test
    type: test
    inputs: [tasks.compileJava]
  - path: tasks.assemble
    type: default
    inputs: [tasks.compileJava]
`

// TestContainer_Load declares tasks from YAML.
func TestContainer_Load(t *testing.T) {
	c := newContainer(t)
	require.NoError(t, c.Load(strings.NewReader(declarations)))
	require.True(t, c.All().IsEmpty())

	tests := tasks.WithType[*tasks.TestTask](c)
	require.NoError(t, tests.RealizeAll())
	require.Equal(t, []string{"test"}, tests.Names())
	require.Equal(t, []string{"compileJava", "test"}, c.All().Names())

	require.NoError(t, c.All().RealizeAll())
	require.Equal(t, []string{"assemble", "compileJava", "test"}, c.All().Names())
}

func TestContainer_LoadErrors(t *testing.T) {
	c := newContainer(t)
	err := c.Load(strings.NewReader("nodes:\n  - path: elsewhere.x\n    type: default\n"))
	require.ErrorIs(t, err, tasks.ErrOutsideContainer)

	err = c.Load(strings.NewReader("nodes:\n  - path: tasks.x\n    type: gizmo\n"))
	require.ErrorIs(t, err, model.ErrInvalidDeclaration)
}

func TestTypes(t *testing.T) {
	var names []string
	for _, e := range tasks.Types().Entries() {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"compile", "default", "test"}, names)
}

// TestContainer_RealizeAllFromListener: a listener that realizes the same view
// while it is being realized returns at once; the outer call completes.
func TestContainer_RealizeAllFromListener(t *testing.T) {
	c := newContainer(t)
	require.NoError(t, tasks.Declare(c, "a", tasks.NewDefaultTask))
	require.NoError(t, tasks.Declare(c, "b", tasks.NewDefaultTask))
	view := tasks.WithType[*tasks.DefaultTask](c)

	var nested []error
	cancel := view.WhenObjectAdded(func(*tasks.DefaultTask) { nested = append(nested, view.RealizeAll()) })
	defer cancel()

	require.NoError(t, view.RealizeAll())
	require.Equal(t, []error{nil, nil}, nested)
	require.Equal(t, []string{"a", "b"}, view.Names())
	require.Equal(t, realize.Done, view.State())
}

// SPDX-License-Identifier: MIT
//
// File: container.go
// Role: The task container node, its backing collection and typed views.
//
// Flow:
//   - Declare/Load register rule-backed nodes under ContainerPath.
//   - When the registry brings such a node to GraphClosed, the container
//     binding adds the created Task to the collection.
//   - Create registers a node for an existing Task and realizes it at once.

package tasks

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/pickypg/gradle/collection"
	"github.com/pickypg/gradle/model"
	"github.com/pickypg/gradle/realize"
)

// ContainerPath is the graph path of the task container.
const ContainerPath model.Path = "tasks"

// Sentinel errors.
var (
	// ErrNotATask indicates a task node created a value that is not a Task.
	ErrNotATask = errors.New("tasks: created value is not a Task")

	// ErrInvalidName indicates an empty task name or one containing the path
	// separator.
	ErrInvalidName = errors.New("tasks: invalid task name")

	// ErrOutsideContainer indicates a declaration that is not a direct child
	// of ContainerPath.
	ErrOutsideContainer = errors.New("tasks: declaration outside the task container")
)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used by the container and its views. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// Container is the set of tasks of one build.
type Container struct {
	registry *model.Registry
	tasks    *collection.Set[Task]
	all      *realize.Collection[Task]
	logger   *zap.Logger
}

// NewContainer registers ContainerPath in registry and binds a fresh task
// collection to it.
//
// Errors: whatever registry.Register returns, e.g. model.ErrDuplicateNode when
// the registry already has a task container.
func NewContainer(registry *model.Registry, opts ...Option) (*Container, error) {
	c := &Container{
		registry: registry,
		tasks:    collection.NewSet[Task](),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := registry.Register(model.Registration{
		Path: ContainerPath,
		Type: reflect.TypeFor[*Container](),
	}); err != nil {
		return nil, err
	}
	registry.Bind(ContainerPath, c.publish)
	c.all = realize.New[Task](c.tasks, registry, ContainerPath, realize.WithLogger(c.logger))

	return c, nil
}

// publish is the container binding: it adds a realized task to the collection.
func (c *Container) publish(p model.Path, v any) error {
	t, ok := v.(Task)
	if !ok {
		return fmt.Errorf("%w: %s produced %T", ErrNotATask, p, v)
	}
	if _, err := c.tasks.Add(t); err != nil {
		return err
	}
	c.logger.Debug("tasks: task realized",
		zap.String("task", t.Name()),
		zap.String("group", t.Group()))

	return nil
}

// validName rejects names that do not address a direct child of ContainerPath.
func validName(name string) error {
	if name == "" || strings.Contains(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// Create adds t to the container immediately.
//
// Errors: ErrInvalidName for an empty or dotted name, model.ErrDuplicateNode
// when a task with that name is already declared or created.
func (c *Container) Create(t Task) error {
	if err := validName(t.Name()); err != nil {
		return err
	}
	p := ContainerPath.Child(t.Name())
	if err := c.registry.Register(model.Registration{
		Path:   p,
		Type:   reflect.TypeOf(t),
		Create: func(model.Path) (any, error) { return t, nil },
	}); err != nil {
		return err
	}
	_, err := c.registry.Realize(p)

	return err
}

// Declare registers a rule-backed task named name. create runs when the
// task is first realized, after every task named in inputs.
//
// The task is declared with type S: views of type S (or of an interface S
// implements) realize it.
//
// Errors: ErrInvalidName when name or an input is empty or dotted,
// model.ErrDuplicateNode when name is already taken.
func Declare[S Task](c *Container, name string, create func(name string) (S, error), inputs ...string) error {
	if err := validName(name); err != nil {
		return err
	}
	for _, in := range inputs {
		if err := validName(in); err != nil {
			return fmt.Errorf("input of %s: %w", name, err)
		}
	}
	reg := model.Registration{
		Path: ContainerPath.Child(name),
		Type: reflect.TypeFor[S](),
		Create: func(p model.Path) (any, error) {
			return create(p.Name())
		},
	}
	for _, in := range inputs {
		reg.Inputs = append(reg.Inputs, ContainerPath.Child(in))
	}
	if err := c.registry.Register(reg); err != nil {
		return err
	}
	c.logger.Debug("tasks: task declared",
		zap.String("task", name),
		zap.Stringer("type", reg.Type),
		zap.Strings("inputs", inputs))

	return nil
}

// Load registers every task declared in a YAML declaration document (see
// model.LoadDeclarations). Types are resolved through Types(); every path
// must be a direct child of ContainerPath.
func (c *Container) Load(src io.Reader) error {
	regs, err := model.LoadDeclarations(src, Types())
	if err != nil {
		return err
	}
	for _, reg := range regs {
		if !reg.Path.IsDirectChildOf(ContainerPath) {
			return fmt.Errorf("%w: %s", ErrOutsideContainer, reg.Path)
		}
	}

	return c.registry.RegisterAll(regs)
}

// Types returns a type table with the built-in task kinds: "default",
// "compile" and "test".
func Types() *model.TypeTable {
	t := model.NewTypeTable()
	mustRegister(t, "default", NewDefaultTask)
	mustRegister(t, "compile", NewCompileTask)
	mustRegister(t, "test", NewTestTask)

	return t
}

func mustRegister[S Task](t *model.TypeTable, name string, create func(string) (S, error)) {
	err := t.Register(name, reflect.TypeFor[S](), func(p model.Path) (any, error) {
		return create(p.Name())
	})
	if err != nil {
		panic(err)
	}
}

// All returns the view of every task. Its RealizeAll realizes every declared
// task.
func (c *Container) All() *realize.Collection[Task] { return c.all }

// WithType returns a view of the tasks of type S. Its RealizeAll realizes the
// tasks declared as S.
func WithType[S Task](c *Container, opts ...realize.Option) *realize.Collection[S] {
	opts = append([]realize.Option{realize.WithLogger(c.logger)}, opts...)
	return realize.New[S](collection.WithType[S](c.tasks), c.registry, ContainerPath, opts...)
}

// RealizeNamed realizes the named tasks, and their inputs, concurrently.
func (c *Container) RealizeNamed(names ...string) error {
	paths := make([]model.Path, len(names))
	for i, n := range names {
		paths[i] = ContainerPath.Child(n)
	}

	return c.registry.RealizeEach(paths...)
}

// Registry returns the graph the container lives in.
func (c *Container) Registry() *model.Registry { return c.registry }

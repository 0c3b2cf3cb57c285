// Package tasks is a small task container built on the model graph and the
// realize decorator.
//
// A Container owns the "tasks" node of a model.Registry and a named
// collection of Task values. Tasks are either created eagerly (Create) or
// declared as rule-backed nodes (Declare, Load) that only exist in the
// collection once the graph realizes them. WithType and All return
// realize.Collection views whose RealizeAll forces every declared task of
// the view's type into the collection.
//
// Typical use:
//
//	c, _ := tasks.NewContainer(model.NewRegistry())
//	_ = tasks.Declare(c, "compile", tasks.NewCompileTask)
//	_ = tasks.Declare(c, "test", tasks.NewTestTask, "compile")
//	compiles := tasks.WithType[*tasks.CompileTask](c)
//	_ = compiles.RealizeAll()
package tasks

// Package gradle is an in-memory model of rule-backed build objects and the
// typed collections that expose them.
//
// What is in here?
//
//	A small, thread-safe library that brings together:
//		• Named collections: live typed views, rules, add/remove callbacks
//		• A declarative object graph: paths, lifecycle states, inputs, bindings
//		• Realization: force every rule-backed member of one type, exactly once
//		• A task container wiring the three together
//
// Under the hood, everything is organized under four subpackages:
//
//	collection/  Set, typed views (WithType), rules and listeners
//	model/       Registry graph: Register, AtStateOrLater, LinksOfType, YAML declarations
//	realize/     Collection decorator with the one-shot RealizeAll
//	tasks/       task container: Declare, Create, WithType, All
//
// Quick ASCII example:
//
//	tasks ──┬── compileJava   (CompileTask)
//	        ├── compileGo     (CompileTask)
//	        └── test          (TestTask, input: compileJava)
//
//	tasks.WithType[*tasks.CompileTask](c).RealizeAll() realizes compileGo and
//	compileJava; test stays declared until something asks for it.
//
//	go get github.com/pickypg/gradle
package gradle

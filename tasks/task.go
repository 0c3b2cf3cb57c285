// SPDX-License-Identifier: MIT
//
// File: task.go
// Role: Task contract and the built-in task kinds.

package tasks

import (
	"slices"

	"github.com/pickypg/gradle/collection"
)

// Task is a named unit of build work.
type Task interface {
	collection.Named
	Group() string
}

// Built-in task groups.
const (
	GroupBuild        = "build"
	GroupVerification = "verification"
	GroupOther        = "other"
)

// DefaultTask is a task with no behavior of its own.
type DefaultTask struct {
	TaskName  string
	TaskGroup string
}

// NewDefaultTask returns a DefaultTask in GroupOther.
func NewDefaultTask(name string) (*DefaultTask, error) {
	return &DefaultTask{TaskName: name, TaskGroup: GroupOther}, nil
}

func (t *DefaultTask) Name() string  { return t.TaskName }
func (t *DefaultTask) Group() string { return t.TaskGroup }

// CompileTask turns sources into classes.
type CompileTask struct {
	DefaultTask
	Sources []string
}

// NewCompileTask returns an empty CompileTask in GroupBuild.
func NewCompileTask(name string) (*CompileTask, error) {
	return &CompileTask{DefaultTask: DefaultTask{TaskName: name, TaskGroup: GroupBuild}}, nil
}

// AddSources appends sources, keeping them sorted and unique.
func (t *CompileTask) AddSources(srcs ...string) {
	t.Sources = append(t.Sources, srcs...)
	slices.Sort(t.Sources)
	t.Sources = slices.Compact(t.Sources)
}

// TestTask runs the tests selected by Filter.
type TestTask struct {
	DefaultTask
	Filter string
}

// NewTestTask returns a TestTask in GroupVerification matching every test.
func NewTestTask(name string) (*TestTask, error) {
	return &TestTask{DefaultTask: DefaultTask{TaskName: name, TaskGroup: GroupVerification}, Filter: "*"}, nil
}

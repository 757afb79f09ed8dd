// Package task is the host task runner that the help decorator sits on top of.
//
// It owns the task registry, a mapping from task name to *Task, and exposes
// the base registration primitive Register(name, deps, fn). Running a task
// executes its dependencies first, each at most once per run, in the order
// they were declared.
package task

package task

import "context"

// Func is the executable body of a task. Args holds the positional
// arguments given after the task name on the command line; dependencies
// are always invoked with nil args.
type Func func(ctx context.Context, args []string) error

// Descriptor is the raw help metadata attached to a task. The concrete
// forms are defined by package help; the registry only stores them.
type Descriptor interface {
	HelpDescriptor()
}

// Task is a single entry of the registry.
type Task struct {
	// Name is the registry key.
	Name string

	// Deps lists the tasks that must complete before this one, in order.
	Deps []string

	// Fn is the body. A nil Fn makes the task a pure aggregate of its deps.
	Fn Func

	// Help is the raw help descriptor, nil when the task has none.
	Help Descriptor
}

// HasDeps reports whether the task declares at least one dependency.
func (t *Task) HasDeps() bool {
	return len(t.Deps) > 0
}

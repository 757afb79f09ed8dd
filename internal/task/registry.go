package task

import (
	"sort"
	"strings"
)

// Registry holds every registered task for a single application instance.
// It is not safe for concurrent use.
type Registry struct {
	tasks map[string]*Task
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]*Task),
	}
}

// Register creates the entry for name, replacing any existing one. The new
// entry carries no help descriptor. The deps slice is copied.
func (r *Registry) Register(name string, deps []string, fn Func) error {
	if strings.TrimSpace(name) == "" {
		return invalidNamef("task name is required")
	}
	for i, dep := range deps {
		if strings.TrimSpace(dep) == "" {
			return invalidNamef("task %q: dependency %d has an empty name", name, i)
		}
	}

	var copied []string
	if len(deps) > 0 {
		copied = make([]string, len(deps))
		copy(copied, deps)
	}

	r.tasks[name] = &Task{
		Name: name,
		Deps: copied,
		Fn:   fn,
	}
	return nil
}

// Get returns the task registered under name.
func (r *Registry) Get(name string) (*Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Has reports whether a task named name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.tasks[name]
	return ok
}

// Names returns all task names in lexicographic order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

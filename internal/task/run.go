package task

import (
	"context"
	"fmt"

	"github.com/specialistvlad/helptask/internal/ctxlog"
)

// Plan returns the execution order for name: every transitive dependency
// before its dependents, each task exactly once, with name last.
func (r *Registry) Plan(name string) ([]*Task, error) {
	// permanent: fully visited. temporary: on the current DFS path.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var path []string
	var order []*Task

	var visit func(name, requiredBy string) error
	visit = func(name, requiredBy string) error {
		if permanent[name] {
			return nil
		}
		if temporary[name] {
			cycle := append([]string{}, path[indexOf(path, name):]...)
			return &CycleError{Path: append(cycle, name)}
		}

		t, ok := r.tasks[name]
		if !ok {
			if requiredBy == "" {
				return fmt.Errorf("%w: %q", ErrUnknownTask, name)
			}
			return fmt.Errorf("%w: %q (required by %q)", ErrUnknownTask, name, requiredBy)
		}

		temporary[name] = true
		path = append(path, name)
		for _, dep := range t.Deps {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		delete(temporary, name)
		permanent[name] = true

		order = append(order, t)
		return nil
	}

	if err := visit(name, ""); err != nil {
		return nil, err
	}
	return order, nil
}

// Run executes name after all of its dependencies. Only name receives
// args. The first failing task stops the run.
func (r *Registry) Run(ctx context.Context, name string, args []string) error {
	logger := ctxlog.FromContext(ctx)

	plan, err := r.Plan(name)
	if err != nil {
		return err
	}
	logger.Debug("Execution plan resolved.", "task", name, "steps", len(plan))

	for _, t := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.Fn == nil {
			logger.Debug("Task has no body, skipping.", "task", t.Name)
			continue
		}

		var taskArgs []string
		if t.Name == name {
			taskArgs = args
		}

		logger.Debug("Starting task.", "task", t.Name)
		if err := t.Fn(ctx, taskArgs); err != nil {
			logger.Error("Task failed.", "task", t.Name, "error", err)
			return fmt.Errorf("task %q failed: %w", t.Name, err)
		}
		logger.Debug("Finished task.", "task", t.Name)
	}
	return nil
}

func indexOf(items []string, target string) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return 0
}

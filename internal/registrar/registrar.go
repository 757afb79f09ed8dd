package registrar

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/helptask/internal/ctxlog"
	"github.com/specialistvlad/helptask/internal/help"
	"github.com/specialistvlad/helptask/internal/task"
)

const (
	HelpTask    = "help"
	DefaultTask = "default"
	helpMessage = "Display this help text"
)

// Registrar wraps a task.Registry with help-aware registration.
type Registrar struct {
	reg    *task.Registry
	logger *slog.Logger
}

// New returns a Registrar writing to reg. A nil logger discards output.
func New(reg *task.Registry, logger *slog.Logger) *Registrar {
	if logger == nil {
		logger = ctxlog.Discard()
	}
	return &Registrar{reg: reg, logger: logger}
}

// Registry returns the wrapped registry.
func (r *Registrar) Registry() *task.Registry {
	return r.reg
}

// Register resolves the call shape of args and registers the task. See
// Resolve for the accepted shapes.
func (r *Registrar) Register(name string, args ...any) (*task.Task, error) {
	reg, err := Resolve(name, args...)
	if err != nil {
		return nil, err
	}
	return r.Apply(reg)
}

// Task registers a task with no help and no dependencies.
func (r *Registrar) Task(name string, fn task.Func) (*task.Task, error) {
	return r.Apply(Registration{Name: name, Fn: fn})
}

// TaskWithDeps registers a task with dependencies and no help.
func (r *Registrar) TaskWithDeps(name string, deps []string, fn task.Func) (*task.Task, error) {
	return r.Apply(Registration{Name: name, Deps: deps, Fn: fn})
}

// TaskWithHelp registers a task with help. h may be nil.
func (r *Registrar) TaskWithHelp(name string, h task.Descriptor, deps []string, fn task.Func) (*task.Task, error) {
	return r.Apply(Registration{Name: name, Help: h, Deps: deps, Fn: fn})
}

// Apply delegates reg to the host registry and attaches its help to the
// resulting entry.
func (r *Registrar) Apply(reg Registration) (*task.Task, error) {
	if r.reg.Has(reg.Name) {
		r.logger.Debug("Replacing registered task.", "task", reg.Name)
	}
	if err := r.reg.Register(reg.Name, reg.Deps, reg.Fn); err != nil {
		return nil, err
	}

	t, _ := r.reg.Get(reg.Name)
	t.Help = reg.Help
	r.logger.Debug("Registered task.", "task", reg.Name, "deps", reg.Deps, "documented", reg.Help != nil)
	return t, nil
}

// Setup installs the "help" task, rendering through renderer, and a
// "default" task depending on it unless one already exists.
func (r *Registrar) Setup(renderer *help.Renderer) error {
	if err := r.InstallHelp(renderer); err != nil {
		return err
	}
	return r.EnsureDefault()
}

// InstallHelp registers the "help" task. Tasks registered afterwards under
// the same name replace it.
func (r *Registrar) InstallHelp(renderer *help.Renderer) error {
	fn := func(ctx context.Context, args []string) error {
		return renderer.Render(ctx, r.reg, args)
	}
	_, err := r.TaskWithHelp(HelpTask, help.Literal(helpMessage), nil, fn)
	return err
}

// EnsureDefault registers a "default" task depending on "help" unless a
// default already exists.
func (r *Registrar) EnsureDefault() error {
	if r.reg.Has(DefaultTask) {
		r.logger.Debug("Keeping existing default task.")
		return nil
	}
	_, err := r.TaskWithDeps(DefaultTask, []string{HelpTask}, nil)
	return err
}

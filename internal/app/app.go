package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/gookit/color"
	"github.com/specialistvlad/helptask/internal/ctxlog"
	"github.com/specialistvlad/helptask/internal/help"
	"github.com/specialistvlad/helptask/internal/registrar"
	"github.com/specialistvlad/helptask/internal/task"
	"github.com/specialistvlad/helptask/internal/taskfile"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	stdout    io.Writer
	logger    *slog.Logger
	config    *Config
	registry  *task.Registry
	registrar *registrar.Registrar
	loader    *taskfile.Loader
	renderer  *help.Renderer
}

// NewApp returns an App that prints to stdout and logs to stderr. Each App
// owns its logger and registry.
func NewApp(stdout, stderr io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	reg := task.NewRegistry()

	return &App{
		stdout:    stdout,
		logger:    logger,
		config:    cfg,
		registry:  reg,
		registrar: registrar.New(reg, logger),
		loader:    taskfile.NewLoader(stdout, stderr),
		renderer: &help.Renderer{
			Out:     stdout,
			Program: cfg.Program,
			Format:  cfg.HelpFormat,
			Width:   cfg.Width,
			Color:   cfg.Color && color.SupportColor(),
		},
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *task.Registry {
	return a.registry
}

// Registrar returns the registrar used to add tasks before Load.
func (a *App) Registrar() *registrar.Registrar {
	return a.registrar
}

// Load registers the built-in help task, the taskfile tasks, and a default
// task when the taskfile defines none.
func (a *App) Load(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	// Installed first so a taskfile task named help takes precedence.
	if err := a.registrar.InstallHelp(a.renderer); err != nil {
		return fmt.Errorf("failed to register built-in tasks: %w", err)
	}

	a.logger.Debug("Loading taskfile.", "path", a.config.Taskfile)
	err := a.loader.Load(ctx, a.registrar, a.config.Taskfile)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !a.config.TaskfileExplicit:
		a.logger.Warn("No taskfile found, only built-in tasks are available.", "path", a.config.Taskfile)
	default:
		return fmt.Errorf("failed to load taskfile: %w", err)
	}

	if err := a.registrar.EnsureDefault(); err != nil {
		return fmt.Errorf("failed to register built-in tasks: %w", err)
	}
	a.logger.Debug("Registry ready.", "tasks", a.registry.Len())
	return nil
}

// Run executes the configured task and its dependencies.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "task", a.config.Task, "args", a.config.Args)

	if err := a.registry.Run(ctx, a.config.Task, a.config.Args); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/helptask/internal/help"
	"github.com/specialistvlad/helptask/internal/registrar"
)

// DefaultTaskfile is read when no taskfile is given. Unlike an explicit
// taskfile it may be absent.
const DefaultTaskfile = "Taskfile.hcl"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Taskfile         string // file or directory of .hcl files
	TaskfileExplicit bool

	Task string
	Args []string

	LogFormat string
	LogLevel  string

	HelpFormat help.Format
	Color      bool
	Width      int
	Program    string
}

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Taskfile == "" {
		if cfg.TaskfileExplicit {
			return nil, errors.New("taskfile path must not be empty")
		}
		cfg.Taskfile = DefaultTaskfile
	}
	if cfg.Task == "" {
		cfg.Task = registrar.DefaultTask
	}
	if cfg.HelpFormat == "" {
		cfg.HelpFormat = help.FormatText
	}
	if cfg.Width == 0 {
		cfg.Width = help.DefaultWidth
	}
	if cfg.Width < 20 {
		return nil, fmt.Errorf("width must be at least 20, got %d", cfg.Width)
	}
	if cfg.Program == "" {
		cfg.Program = help.DefaultProgram
	}
	return &cfg, nil
}

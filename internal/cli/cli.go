package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/helptask/internal/app"
	"github.com/specialistvlad/helptask/internal/help"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Everything after the first positional argument belongs to the task.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet(help.DefaultProgram, flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
helptask - run tasks declared in HCL taskfiles.

Usage:
  helptask [options] [TASK] [ARGS...]
  helptask [options] help [TASK]

Without TASK the "default" task runs, which shows help unless the taskfile
defines its own.

Options:
`)
		flagSet.PrintDefaults()
	}

	var taskfile string
	flagSet.StringVar(&taskfile, "taskfile", app.DefaultTaskfile, "Path to a taskfile or a directory of .hcl taskfiles.")
	flagSet.StringVar(&taskfile, "f", app.DefaultTaskfile, "Path to a taskfile or a directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	helpFormatFlag := flagSet.String("help-format", "text", "Help output format. Options: 'text' or 'json'.")
	noColorFlag := flagSet.Bool("no-color", false, "Disable colored help output.")
	widthFlag := flagSet.Int("width", help.DefaultWidth, "Wrap help text at this many columns.")
	programFlag := flagSet.String("program", help.DefaultProgram, "Program name shown in usage lines.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, usageErrorf("%s", err.Error())
	}

	explicit := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "taskfile" || f.Name == "f" {
			explicit = true
		}
	})

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageErrorf("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageErrorf("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	helpFormat, err := help.ParseFormat(*helpFormatFlag)
	if err != nil {
		return nil, false, usageErrorf("%s", err.Error())
	}

	var taskName string
	var taskArgs []string
	if flagSet.NArg() > 0 {
		taskName = flagSet.Arg(0)
		taskArgs = flagSet.Args()[1:]
	}

	config, err := app.NewConfig(app.Config{
		Taskfile:         taskfile,
		TaskfileExplicit: explicit,
		Task:             taskName,
		Args:             taskArgs,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		HelpFormat:       helpFormat,
		Color:            !*noColorFlag,
		Width:            *widthFlag,
		Program:          *programFlag,
	})
	if err != nil {
		return nil, false, usageErrorf("%s", err.Error())
	}

	return config, false, nil
}

package taskfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/specialistvlad/helptask/internal/ctxlog"
	"github.com/specialistvlad/helptask/internal/task"
)

// Func returns the body of def, or nil when def has no command.
func (def *Definition) Func(stdout, stderr io.Writer) task.Func {
	if def.Shell == "" && len(def.Argv) == 0 {
		return nil
	}

	return func(ctx context.Context, args []string) error {
		var cmd *exec.Cmd
		if def.Shell != "" {
			// "sh" fills $0 so args land in "$@".
			shellArgs := append([]string{"-c", def.Shell, "sh"}, args...)
			cmd = exec.CommandContext(ctx, "sh", shellArgs...)
		} else {
			argv := append(append([]string{}, def.Argv[1:]...), args...)
			cmd = exec.CommandContext(ctx, def.Argv[0], argv...)
		}
		cmd.Dir = def.Dir
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		cmd.Env = append(os.Environ(), envPairs(def.Env)...)

		ctxlog.FromContext(ctx).Debug("Running command.", "task", def.Name, "args", cmd.Args, "dir", cmd.Dir)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("command failed: %w", err)
		}
		return nil
	}
}

// envPairs renders env as KEY=VALUE entries sorted by key.
func envPairs(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+env[k])
	}
	return pairs
}

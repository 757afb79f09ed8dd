// Package testutil holds the shared harness for tests that drive a full App
// against taskfiles written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/helptask/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a harness run.
type HarnessResult struct {
	Stdout string
	Logs   string
	Err    error
	App    *app.App
}

// WriteFiles writes files, keyed by slash-separated relative path, below a
// fresh temporary directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// RunApp loads the taskfiles in files and runs taskName with args. The
// taskfile path is the temporary directory itself. Help is rendered as
// plain text at the default width.
func RunApp(t *testing.T, files map[string]string, taskName string, args ...string) *HarnessResult {
	t.Helper()
	return RunAppWithConfig(t, files, app.Config{Task: taskName, Args: args})
}

// RunAppWithConfig is RunApp with caller-provided configuration. Taskfile
// and log settings are overridden.
func RunAppWithConfig(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	cfg.Taskfile = WriteFiles(t, files)
	cfg.TaskfileExplicit = true
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	stdout := &SafeBuffer{}
	logs := &SafeBuffer{}
	a := app.NewApp(stdout, logs, config)

	ctx := context.Background()
	runErr := a.Load(ctx)
	if runErr == nil {
		runErr = a.Run(ctx)
	}

	if os.Getenv("HELPTASK_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Stdout: stdout.String(),
		Logs:   logs.String(),
		Err:    runErr,
		App:    a,
	}
}

package taskfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/helptask/internal/ctxlog"
	"github.com/specialistvlad/helptask/internal/help"
	"github.com/specialistvlad/helptask/internal/registrar"
	"github.com/specialistvlad/helptask/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
task "build" {
  help    = "Compile the project"
  deps    = ["clean"]
  command = "go build ./..."
}

task "clean" {
  command = ["rm", "-rf", "bin"]
}

task "test" {
  deps    = ["build"]
  command = "go test ./..."
  dir     = "src"
  env     = { CGO_ENABLED = "0" }
  help = {
    msg  = "Run the tests of ${task.name} after ${join(", ", task.deps)}"
    args = ["short", { name = "verbose", msg = "Verbose output", aliases = ["v"] }]
  }
}

task "lint" {
  help = {
    msg  = upper("lint")
    args = { fix = "Apply fixes", "dry-run" = "Report only" }
  }
}
`

func parseSample(t *testing.T) map[string]*Definition {
	t.Helper()
	defs, err := Parse("/work/Taskfile.hcl", []byte(sample))
	require.NoError(t, err)

	byName := make(map[string]*Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	return byName
}

func normalized(t *testing.T, def *Definition) *help.Help {
	t.Helper()
	h, err := help.Normalize(&task.Task{Name: def.Name, Deps: def.Deps, Help: def.Help})
	require.NoError(t, err)
	return h
}

func TestParse(t *testing.T) {
	defs := parseSample(t)
	require.Len(t, defs, 4)

	t.Run("literal help and shell command", func(t *testing.T) {
		build := defs["build"]
		assert.Equal(t, help.Literal("Compile the project"), build.Help)
		assert.Equal(t, []string{"clean"}, build.Deps)
		assert.Equal(t, "go build ./...", build.Shell)
		assert.Equal(t, "/work", build.Dir)
	})

	t.Run("no help and argv command", func(t *testing.T) {
		clean := defs["clean"]
		assert.Nil(t, clean.Help)
		assert.Empty(t, clean.Deps)
		assert.Equal(t, []string{"rm", "-rf", "bin"}, clean.Argv)
		assert.Empty(t, clean.Shell)
	})

	t.Run("computed help with arg list", func(t *testing.T) {
		test := defs["test"]
		_, isComputed := test.Help.(help.Computed)
		require.True(t, isComputed, "help referencing task should be computed")
		assert.Equal(t, filepath.Join("/work", "src"), test.Dir)
		assert.Equal(t, map[string]string{"CGO_ENABLED": "0"}, test.Env)

		expected := &help.Help{
			Name: "test",
			Msg:  "Run the tests of test after build",
			Deps: []string{"build"},
			Args: []help.Argument{
				{Name: "short", Aliases: []string{}},
				{Name: "verbose", Msg: "Verbose output", Aliases: []string{"v"}},
			},
		}
		if diff := cmp.Diff(expected, normalized(t, test)); diff != "" {
			t.Errorf("help mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("static structured help with arg map", func(t *testing.T) {
		lint := defs["lint"]
		_, isStructured := lint.Help.(help.Structured)
		require.True(t, isStructured)

		expected := &help.Help{
			Name: "lint",
			Msg:  "LINT",
			Args: []help.Argument{
				{Name: "fix", Msg: "Apply fixes", Aliases: []string{}},
				{Name: "dry-run", Msg: "Report only", Aliases: []string{}},
			},
		}
		if diff := cmp.Diff(expected, normalized(t, lint)); diff != "" {
			t.Errorf("help mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestParse_ArgMapKeepsSourceOrder(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{
			name: "static help",
			src:  `task "sync" { help = { msg = "Sync", args = { zeta = "z", alpha = "a", "mid-way" = "m" } } }`,
		},
		{
			name: "computed help",
			src:  `task "sync" { help = { msg = task.name, args = { zeta = "z", alpha = "a", "mid-way" = "m" } } }`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			defs, err := Parse("Taskfile.hcl", []byte(tc.src))
			require.NoError(t, err)
			require.Len(t, defs, 1)

			// --- Act ---
			h := normalized(t, defs[0])

			// --- Assert ---
			require.NotNil(t, h)
			expected := []help.Argument{
				{Name: "zeta", Msg: "z", Aliases: []string{}},
				{Name: "alpha", Msg: "a", Aliases: []string{}},
				{Name: "mid-way", Msg: "m", Aliases: []string{}},
			}
			if diff := cmp.Diff(expected, h.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrderedArgMap_AppendsUnlistedKeysSorted(t *testing.T) {
	got := orderedArgMap(map[string]string{"b": "2", "c": "3", "a": "1"}, []string{"c"})
	assert.Equal(t, help.ArgMap{{Name: "c", Msg: "3"}, {Name: "a", Msg: "1"}, {Name: "b", Msg: "2"}}, got)
}

func TestParse_ComputedFollowsCurrentDeps(t *testing.T) {
	defs := parseSample(t)
	tk := &task.Task{Name: "test", Deps: []string{"build", "vet"}, Help: defs["test"].Help}

	h, err := help.Normalize(tk)
	require.NoError(t, err)
	assert.Equal(t, "Run the tests of test after build, vet", h.Msg)
}

func TestParse_ArgWithoutNameFailsAtRender(t *testing.T) {
	src := `
task "broken" {
  help = { msg = "x", args = [{ msg = "nameless" }] }
}
`
	defs, err := Parse("Taskfile.hcl", []byte(src))
	require.NoError(t, err)
	require.Len(t, defs, 1)

	_, err = help.Normalize(&task.Task{Name: "broken", Help: defs[0].Help})
	require.Error(t, err)
	assert.True(t, errors.Is(err, help.ErrArgument))
	assert.Contains(t, err.Error(), "arg.name must be specified")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		contains string
	}{
		{
			name:     "syntax error",
			src:      `task "a" {`,
			contains: "failed to parse",
		},
		{
			name:     "unknown attribute",
			src:      `task "a" { shell = "bash" }`,
			contains: "Unsupported argument",
		},
		{
			name:     "unknown block",
			src:      `job "a" {}`,
			contains: "Unsupported block type",
		},
		{
			name:     "deps not a list",
			src:      `task "a" { deps = 3 }`,
			contains: "Invalid deps value",
		},
		{
			name:     "empty command list",
			src:      `task "a" { command = [] }`,
			contains: "command list must not be empty",
		},
		{
			name:     "unknown help attribute",
			src:      `task "a" { help = { message = "x" } }`,
			contains: `unsupported attribute "message"`,
		},
		{
			name:     "unknown arg attribute",
			src:      `task "a" { help = { args = [{ name = "x", short = "y" }] } }`,
			contains: `unsupported attribute "short"`,
		},
		{
			name:     "unknown variable",
			src:      `task "a" { help = project.name }`,
			contains: "Unknown variable",
		},
		{
			name:     "bad computed help",
			src:      `task "a" { help = { msg = task.nope } }`,
			contains: "Unsupported attribute",
		},
		{
			name:     "duplicate task",
			src:      "task \"a\" {}\ntask \"a\" {}\n",
			contains: "Duplicate task",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("Taskfile.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func writeTaskfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	writeTaskfile(t, dir, "a.hcl", `
task "greet" {
  help    = "Say hello"
  deps    = ["prepare"]
  command = "echo \"hello $1\""
}
`)
	writeTaskfile(t, dir, "nested/b.hcl", `
task "prepare" {
  command = ["echo", "preparing"]
}
`)
	stdout := &bytes.Buffer{}
	reg := task.NewRegistry()
	r := registrar.New(reg, nil)

	// --- Act ---
	err := NewLoader(stdout, &bytes.Buffer{}).Load(testContext(), r, dir)
	require.NoError(t, err)
	err = reg.Run(testContext(), "greet", []string{"world"})

	// --- Assert ---
	require.NoError(t, err)
	greet, ok := reg.Get("greet")
	require.True(t, ok)
	assert.Equal(t, help.Literal("Say hello"), greet.Help)
	assert.Equal(t, "preparing\nhello world\n", stdout.String())
}

func TestLoader_DuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeTaskfile(t, dir, "a.hcl", `task "same" {}`)
	writeTaskfile(t, dir, "b.hcl", `task "same" {}`)

	_, err := NewLoader(nil, nil).ParseFiles(testContext(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Duplicate task")
	assert.True(t, strings.Contains(err.Error(), "a.hcl"), "error should name the first definition")
}

func TestDefinition_FuncFailure(t *testing.T) {
	def := &Definition{Name: "fail", Shell: "exit 3", Dir: t.TempDir()}

	err := def.Func(&bytes.Buffer{}, &bytes.Buffer{})(testContext(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
}

func TestDefinition_FuncNilWithoutCommand(t *testing.T) {
	def := &Definition{Name: "aggregate"}
	assert.Nil(t, def.Func(nil, nil))
}

func TestEnvPairs(t *testing.T) {
	assert.Equal(t, []string{"A=1", "B=2"}, envPairs(map[string]string{"B": "2", "A": "1"}))
}

func TestParse_EnvironmentVariables(t *testing.T) {
	t.Setenv("HELPTASK_TEST_TARGET", "linux")
	src := `
task "release" {
  help    = "Release for ${env.HELPTASK_TEST_TARGET}"
  command = ["echo", env.HELPTASK_TEST_TARGET]
}
`
	defs, err := Parse("Taskfile.hcl", []byte(src))
	require.NoError(t, err)
	require.Len(t, defs, 1)

	assert.Equal(t, help.Literal("Release for linux"), defs[0].Help)
	assert.Equal(t, []string{"echo", "linux"}, defs[0].Argv)
}

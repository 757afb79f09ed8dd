package taskfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/helptask/internal/ctxlog"
	"github.com/specialistvlad/helptask/internal/fsutil"
	"github.com/specialistvlad/helptask/internal/registrar"
)

// Loader reads taskfiles and registers their tasks.
type Loader struct {
	stdout io.Writer
	stderr io.Writer
}

// NewLoader returns a Loader whose command tasks write to stdout and stderr.
func NewLoader(stdout, stderr io.Writer) *Loader {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Loader{stdout: stdout, stderr: stderr}
}

// Load parses every taskfile under paths and registers the tasks through r.
func (l *Loader) Load(ctx context.Context, r *registrar.Registrar, paths ...string) error {
	logger := ctxlog.FromContext(ctx)

	defs, err := l.ParseFiles(ctx, paths...)
	if err != nil {
		return err
	}

	for _, def := range defs {
		if _, err := r.TaskWithHelp(def.Name, def.Help, def.Deps, def.Func(l.stdout, l.stderr)); err != nil {
			return fmt.Errorf("failed to register task %q from %s: %w", def.Name, def.Source, err)
		}
	}
	logger.Debug("Taskfile tasks registered.", "count", len(defs))
	return nil
}

// ParseFiles parses every .hcl file found under paths. Task names must be
// unique across all files.
func (l *Loader) ParseFiles(ctx context.Context, paths ...string) ([]*Definition, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindTaskfiles(paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered taskfiles.", "count", len(files))

	parser := hclparse.NewParser()
	seen := make(map[string]*Definition)
	var all []*Definition

	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse taskfile %s: %w", file, diags)
		}

		defs, diags := decodeFile(f.Body, file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode taskfile %s: %w", file, diags)
		}

		for _, def := range defs {
			if prev, dup := seen[def.Name]; dup {
				return nil, fmt.Errorf("failed to decode taskfile %s: %w", file, hcl.Diagnostics{{
					Severity: hcl.DiagError,
					Summary:  "Duplicate task",
					Detail:   fmt.Sprintf("Task %q is already defined in %s.", def.Name, prev.Source),
					Subject:  def.DefRange.Ptr(),
				}})
			}
			seen[def.Name] = def
			all = append(all, def)
		}
		logger.Debug("Loaded taskfile.", "file", file, "tasks", len(defs))
	}
	return all, nil
}

// Parse decodes the taskfile source src. filename is used for diagnostics
// and as the base of relative dir values.
func Parse(filename string, src []byte) ([]*Definition, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse taskfile %s: %w", filename, diags)
	}

	defs, diags := decodeFile(f.Body, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode taskfile %s: %w", filename, diags)
	}
	return defs, nil
}

func decodeFile(body hcl.Body, filename string) ([]*Definition, hcl.Diagnostics) {
	var root hclFile
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, diags
	}

	var allDiags hcl.Diagnostics
	names := make(map[string]struct{}, len(root.Tasks))
	defs := make([]*Definition, 0, len(root.Tasks))
	for _, block := range root.Tasks {
		def, diags := newDefinition(block, filename)
		allDiags = append(allDiags, diags...)
		if def == nil {
			continue
		}
		if _, dup := names[def.Name]; dup {
			allDiags = append(allDiags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate task",
				Detail:   fmt.Sprintf("Task %q is defined more than once.", def.Name),
				Subject:  def.DefRange.Ptr(),
			})
			continue
		}
		names[def.Name] = struct{}{}
		defs = append(defs, def)
	}
	return defs, allDiags
}

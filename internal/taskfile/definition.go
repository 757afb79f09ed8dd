package taskfile

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/helptask/internal/help"
	"github.com/specialistvlad/helptask/internal/task"
	"github.com/zclconf/go-cty/cty"
)

// Definition is a task as declared in a taskfile.
type Definition struct {
	Name string
	Deps []string
	Help task.Descriptor

	// Shell is run with "sh -c". Argv is executed directly. At most one is set.
	Shell string
	Argv  []string

	// Dir is the working directory, absolute when the taskfile path was.
	Dir string
	Env map[string]string

	// Source is the file the definition was read from.
	Source   string
	DefRange hcl.Range
}

// hclFile is the top-level structure of a taskfile.
type hclFile struct {
	Tasks []*hclTask `hcl:"task,block"`
}

// hclTask is a task block decoded far enough to read its label.
type hclTask struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// hclTaskBody holds the raw attribute expressions of a task block.
type hclTaskBody struct {
	Help    hcl.Expression `hcl:"help,optional"`
	Deps    hcl.Expression `hcl:"deps,optional"`
	Command hcl.Expression `hcl:"command,optional"`
	Dir     hcl.Expression `hcl:"dir,optional"`
	Env     hcl.Expression `hcl:"env,optional"`
}

func newDefinition(block *hclTask, filename string) (*Definition, hcl.Diagnostics) {
	var body hclTaskBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return nil, diags
	}

	def := &Definition{
		Name:     block.Name,
		Source:   filename,
		Dir:      filepath.Dir(filename),
		DefRange: block.Body.MissingItemRange(),
	}

	if def.Deps, diags = evalStatic(body.Deps, "deps", toStringList); diags.HasErrors() {
		return nil, diags
	}

	commandVal, diags := body.Command.Value(staticContext())
	if diags.HasErrors() {
		return nil, diags
	}
	if !commandVal.IsNull() {
		var err error
		if commandVal.Type() == cty.String {
			def.Shell, err = toString(commandVal)
		} else {
			def.Argv, err = toStringList(commandVal)
			if err == nil && len(def.Argv) == 0 {
				err = fmt.Errorf("command list must not be empty")
			}
		}
		if err != nil {
			return nil, hcl.Diagnostics{exprError(body.Command, "Invalid command", err)}
		}
	}

	dir, diags := evalStatic(body.Dir, "dir", toString)
	if diags.HasErrors() {
		return nil, diags
	}
	if dir != "" {
		if filepath.IsAbs(dir) {
			def.Dir = filepath.Clean(dir)
		} else {
			def.Dir = filepath.Join(def.Dir, dir)
		}
	}

	if def.Env, diags = evalStatic(body.Env, "env", toStringMap); diags.HasErrors() {
		return nil, diags
	}

	if def.Help, diags = buildHelp(body.Help, def.Name, def.Deps); diags.HasErrors() {
		return nil, diags
	}
	return def, nil
}

// buildHelp evaluates a help expression. Expressions reading the task
// variable are evaluated once here to surface errors early and wrapped in a
// help.Computed for render time.
func buildHelp(expr hcl.Expression, name string, deps []string) (task.Descriptor, hcl.Diagnostics) {
	if !referencesTask(expr) {
		ctx := staticContext()
		val, diags := expr.Value(ctx)
		if diags.HasErrors() {
			return nil, diags
		}
		d, err := decodeHelp(val, argsOrder(expr, ctx))
		if err != nil {
			return nil, hcl.Diagnostics{exprError(expr, "Invalid help", err)}
		}
		return d, nil
	}

	if _, err := evalHelp(expr, name, deps); err != nil {
		if diags, ok := err.(hcl.Diagnostics); ok {
			return nil, diags
		}
		return nil, hcl.Diagnostics{exprError(expr, "Invalid help", err)}
	}

	return help.Computed(func(t *task.Task, name string) (task.Descriptor, error) {
		return evalHelp(expr, name, t.Deps)
	}), nil
}

func evalHelp(expr hcl.Expression, name string, deps []string) (task.Descriptor, error) {
	ctx := taskContext(name, deps)
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	return decodeHelp(val, argsOrder(expr, ctx))
}

func evalStatic[T any](expr hcl.Expression, attr string, conv func(cty.Value) (T, error)) (T, hcl.Diagnostics) {
	var zero T
	val, diags := expr.Value(staticContext())
	if diags.HasErrors() {
		return zero, diags
	}
	out, err := conv(val)
	if err != nil {
		return zero, hcl.Diagnostics{exprError(expr, fmt.Sprintf("Invalid %s value", attr), err)}
	}
	return out, diags
}

func exprError(expr hcl.Expression, summary string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   err.Error(),
		Subject:  expr.Range().Ptr(),
	}
}

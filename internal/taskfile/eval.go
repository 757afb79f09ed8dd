package taskfile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

const (
	// taskVar is the root name that makes a help expression dynamic.
	taskVar = "task"

	// envVar exposes the process environment as env.NAME.
	envVar = "env"
)

var functions = map[string]function.Function{
	"upper":     stdlib.UpperFunc,
	"lower":     stdlib.LowerFunc,
	"join":      stdlib.JoinFunc,
	"format":    stdlib.FormatFunc,
	"trimspace": stdlib.TrimSpaceFunc,
}

// staticContext evaluates expressions that may only read env.
func staticContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			envVar: environment(),
		},
		Functions: functions,
	}
}

// taskContext exposes task.name and task.deps to help expressions.
func taskContext(name string, deps []string) *hcl.EvalContext {
	depsVal := cty.ListValEmpty(cty.String)
	if len(deps) > 0 {
		vals := make([]cty.Value, len(deps))
		for i, d := range deps {
			vals[i] = cty.StringVal(d)
		}
		depsVal = cty.ListVal(vals)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			taskVar: cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal(name),
				"deps": depsVal,
			}),
			envVar: environment(),
		},
		Functions: functions,
	}
}

// environment returns the process environment as a map of strings.
func environment() cty.Value {
	vals := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok && k != "" {
			vals[k] = cty.StringVal(v)
		}
	}
	if len(vals) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	return cty.MapVal(vals)
}

// referencesTask reports whether expr reads the task variable.
func referencesTask(expr hcl.Expression) bool {
	for _, traversal := range expr.Variables() {
		if traversal.RootName() == taskVar {
			return true
		}
	}
	return false
}

func toString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	if !v.IsWhollyKnown() {
		return "", fmt.Errorf("value must be known")
	}
	converted, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("expected a string, got %s", v.Type().FriendlyName())
	}
	var s string
	if err := gocty.FromCtyValue(converted, &s); err != nil {
		return "", err
	}
	return s, nil
}

func toStringList(v cty.Value) ([]string, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known")
	}
	converted, err := convert.Convert(v, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("expected a list of strings, got %s", v.Type().FriendlyName())
	}
	var out []string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toStringMap(v cty.Value) (map[string]string, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known")
	}
	converted, err := convert.Convert(v, cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("expected a map of strings, got %s", v.Type().FriendlyName())
	}
	var out map[string]string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// attributes returns the fields of an object or map value, rejecting keys
// outside allowed.
func attributes(v cty.Value, allowed ...string) (map[string]cty.Value, error) {
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("expected an object, got %s", ty.FriendlyName())
	}

	fields := v.AsValueMap()
	var unknown []string
	for key := range fields {
		if !contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unsupported attribute %q", unknown[0])
	}
	return fields, nil
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

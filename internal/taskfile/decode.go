package taskfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/helptask/internal/help"
	"github.com/specialistvlad/helptask/internal/task"
	"github.com/zclconf/go-cty/cty"
)

// decodeHelp converts an evaluated help value into a descriptor. A null
// value means the task has no help. order lists the keys of a mapping-form
// args in source order; keys missing from it are appended sorted.
func decodeHelp(v cty.Value, order []string) (task.Descriptor, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("help must be known")
	}
	if v.Type() == cty.String {
		s, err := toString(v)
		if err != nil {
			return nil, err
		}
		return help.Literal(s), nil
	}

	fields, err := attributes(v, "msg", "args")
	if err != nil {
		return nil, fmt.Errorf("help: %w", err)
	}

	var out help.Structured
	if msg, ok := fields["msg"]; ok {
		if out.Msg, err = toString(msg); err != nil {
			return nil, fmt.Errorf("help.msg: %w", err)
		}
	}
	if args, ok := fields["args"]; ok && !args.IsNull() {
		if out.Args, err = decodeArgs(args, order); err != nil {
			return nil, fmt.Errorf("help.args: %w", err)
		}
	}
	return out, nil
}

func decodeArgs(v cty.Value, order []string) (help.Args, error) {
	ty := v.Type()
	switch {
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		list := help.ArgList{}
		for i, elem := range v.AsValueSlice() {
			spec, err := decodeArg(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			list = append(list, spec)
		}
		return list, nil
	case ty.IsObjectType() || ty.IsMapType():
		m, err := toStringMap(v)
		if err != nil {
			return nil, err
		}
		return orderedArgMap(m, order), nil
	default:
		return nil, fmt.Errorf("expected a list or an object, got %s", ty.FriendlyName())
	}
}

func decodeArg(v cty.Value) (help.ArgSpec, error) {
	if v.IsNull() {
		return help.Arg{}, nil
	}
	if v.Type() == cty.String {
		s, err := toString(v)
		if err != nil {
			return nil, err
		}
		return help.BareArg(s), nil
	}

	fields, err := attributes(v, "name", "msg", "aliases")
	if err != nil {
		return nil, err
	}

	var arg help.Arg
	if name, ok := fields["name"]; ok {
		if arg.Name, err = toString(name); err != nil {
			return nil, fmt.Errorf("name: %w", err)
		}
	}
	if msg, ok := fields["msg"]; ok {
		if arg.Msg, err = toString(msg); err != nil {
			return nil, fmt.Errorf("msg: %w", err)
		}
	}
	if aliases, ok := fields["aliases"]; ok {
		if arg.Aliases, err = toStringList(aliases); err != nil {
			return nil, fmt.Errorf("aliases: %w", err)
		}
	}
	return arg, nil
}

func orderedArgMap(m map[string]string, order []string) help.ArgMap {
	out := make(help.ArgMap, 0, len(m))
	for _, name := range order {
		msg, ok := m[name]
		if !ok {
			continue
		}
		out = append(out, help.ArgEntry{Name: name, Msg: msg})
		delete(m, name)
	}
	return append(out, help.ArgMapFrom(m)...)
}

// argsOrder returns the keys of help's args in the order they are written,
// or nil unless both help and args are object literals.
func argsOrder(expr hcl.Expression, ctx *hcl.EvalContext) []string {
	items, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return nil
	}
	for _, item := range items {
		if key, ok := objectKey(item.Key, ctx); !ok || key != "args" {
			continue
		}
		pairs, diags := hcl.ExprMap(item.Value)
		if diags.HasErrors() {
			return nil
		}
		order := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			if key, ok := objectKey(pair.Key, ctx); ok {
				order = append(order, key)
			}
		}
		return order
	}
	return nil
}

func objectKey(expr hcl.Expression, ctx *hcl.EvalContext) (string, bool) {
	v, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return "", false
	}
	s, err := toString(v)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

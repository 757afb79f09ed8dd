// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package help

import (
	"github.com/specialistvlad/helptask/internal/task"
)

// Help is the normalized descriptor of a task.
type Help struct {
	Name string     `json:"name"`
	Msg  string     `json:"msg"`
	Deps []string   `json:"deps,omitempty"`
	Args []Argument `json:"args,omitempty"`
}

// Argument is a normalized argument descriptor. Aliases is never nil.
type Argument struct {
	Name    string   `json:"name"`
	Msg     string   `json:"msg,omitempty"`
	Aliases []string `json:"aliases"`
}

// Normalize returns the canonical help of t, or nil when t has none. An
// empty Literal counts as no help.
func Normalize(t *task.Task) (*Help, error) {
	raw := t.Help
	if raw == nil {
		return nil, nil
	}
	if lit, ok := raw.(Literal); ok && lit == "" {
		return nil, nil
	}

	// One level of indirection only.
	if fn, ok := raw.(Computed); ok {
		if fn == nil {
			return nil, nil
		}
		resolved, err := fn(t, t.Name)
		if err != nil {
			return nil, err
		}
		if _, nested := resolved.(Computed); nested {
			return nil, argumentErrorf(t.Name, "help function must not return another function")
		}
		if resolved == nil {
			return nil, nil
		}
		raw = resolved
	}

	var structured Structured
	switch d := raw.(type) {
	case Literal:
		structured = Structured{Msg: string(d)}
	case Structured:
		structured = d
	case *Structured:
		if d == nil {
			return nil, nil
		}
		structured = *d
	default:
		return nil, argumentErrorf(t.Name, "unsupported help descriptor %T", raw)
	}

	args, err := normalizeArgs(t.Name, structured.Args)
	if err != nil {
		return nil, err
	}

	out := &Help{
		Name: t.Name,
		Msg:  structured.Msg,
	}
	if t.HasDeps() {
		out.Deps = append([]string(nil), t.Deps...)
	}
	if len(args) > 0 {
		out.Args = args
	}
	return out, nil
}

func normalizeArgs(taskName string, raw Args) ([]Argument, error) {
	var specs []ArgSpec
	switch a := raw.(type) {
	case nil:
	case ArgList:
		specs = append(specs, a...)
	case ArgMap:
		for _, entry := range a {
			specs = append(specs, Arg{Name: entry.Name, Msg: entry.Msg})
		}
	default:
		return nil, argumentErrorf(taskName, "unsupported args %T", raw)
	}

	out := make([]Argument, 0, len(specs))
	for _, spec := range specs {
		var arg Arg
		switch s := spec.(type) {
		case BareArg:
			arg = Arg{Name: string(s)}
		case Arg:
			arg = s
		case *Arg:
			if s != nil {
				arg = *s
			}
		}

		if arg.Name == "" {
			return nil, argumentErrorf(taskName, "arg.name must be specified")
		}

		aliases := make([]string, len(arg.Aliases))
		copy(aliases, arg.Aliases)
		out = append(out, Argument{Name: arg.Name, Msg: arg.Msg, Aliases: aliases})
	}
	return out, nil
}

package registrar

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/helptask/internal/help"
	"github.com/specialistvlad/helptask/internal/task"
)

// ErrBadArguments is returned when a Register call matches no known shape.
var ErrBadArguments = errors.New("invalid task registration arguments")

// Registration is a fully resolved registration call.
type Registration struct {
	Name string
	Help task.Descriptor
	Deps []string
	Fn   task.Func
}

// Resolve maps the arguments following name onto a Registration.
//
// With three arguments the positions are literal: help, deps, fn. With
// fewer, the first argument is help only if it is a string, a descriptor or
// nil; anything else shifts the remaining arguments into deps and fn. In
// these shorter shapes a function left in the deps position moves to fn.
func Resolve(name string, args ...any) (Registration, error) {
	if len(args) > 3 {
		return Registration{}, fmt.Errorf("%w: task %q: expected at most 3 arguments after the name, got %d", ErrBadArguments, name, len(args))
	}

	slots := make([]any, 3)
	copy(slots, args)
	if len(args) < 3 {
		if len(args) > 0 && !isHelpShape(args[0]) {
			slots = []any{nil, slots[0], slots[1]}
		}
		if slots[2] == nil && isFunc(slots[1]) {
			slots[1], slots[2] = nil, slots[1]
		}
	}

	reg := Registration{Name: name}
	var err error
	if reg.Help, err = toDescriptor(slots[0]); err != nil {
		return Registration{}, fmt.Errorf("%w: task %q: help: %v", ErrBadArguments, name, err)
	}
	if reg.Deps, err = toDeps(slots[1]); err != nil {
		return Registration{}, fmt.Errorf("%w: task %q: deps: %v", ErrBadArguments, name, err)
	}
	if reg.Fn, err = toFunc(slots[2]); err != nil {
		return Registration{}, fmt.Errorf("%w: task %q: fn: %v", ErrBadArguments, name, err)
	}
	return reg, nil
}

func isHelpShape(v any) bool {
	switch v.(type) {
	case nil, string, task.Descriptor:
		return true
	}
	return false
}

func isFunc(v any) bool {
	switch v.(type) {
	case task.Func, func(context.Context, []string) error:
		return true
	}
	return false
}

func toDescriptor(v any) (task.Descriptor, error) {
	switch h := v.(type) {
	case nil:
		return nil, nil
	case string:
		return help.Literal(h), nil
	case task.Descriptor:
		return h, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

func toDeps(v any) ([]string, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

func toFunc(v any) (task.Func, error) {
	switch fn := v.(type) {
	case nil:
		return nil, nil
	case task.Func:
		return fn, nil
	case func(context.Context, []string) error:
		return fn, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

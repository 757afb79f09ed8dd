// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package help

import (
	"sort"

	"github.com/specialistvlad/helptask/internal/task"
)

// Literal is a help descriptor consisting of a message only.
type Literal string

// HelpDescriptor implements task.Descriptor.
func (Literal) HelpDescriptor() {}

// Structured is a help descriptor with a message and optional arguments.
type Structured struct {
	Msg string

	// Args is nil when the task documents no arguments.
	Args Args
}

// HelpDescriptor implements task.Descriptor.
func (Structured) HelpDescriptor() {}

// Computed produces the real descriptor from the task at render time. It
// must return a Literal, a Structured, or nil for "no help".
type Computed func(t *task.Task, name string) (task.Descriptor, error)

// HelpDescriptor implements task.Descriptor.
func (Computed) HelpDescriptor() {}

// Args is the argument section of a Structured descriptor: an ArgList or an
// ArgMap.
type Args interface {
	helpArgs()
}

// ArgSpec is one element of an ArgList: a BareArg or an Arg.
type ArgSpec interface {
	argSpec()
}

// BareArg documents an argument by name only.
type BareArg string

func (BareArg) argSpec() {}

// Arg documents an argument with an optional message and aliases.
type Arg struct {
	Name    string
	Msg     string
	Aliases []string
}

func (Arg) argSpec() {}

// ArgList is an ordered sequence of argument descriptors.
type ArgList []ArgSpec

func (ArgList) helpArgs() {}

// ArgEntry is one name/message pair of an ArgMap.
type ArgEntry struct {
	Name string
	Msg  string
}

// ArgMap maps argument names to messages. Entries keep their order.
type ArgMap []ArgEntry

func (ArgMap) helpArgs() {}

// ArgMapFrom builds an ArgMap from m with keys in lexicographic order.
func ArgMapFrom(m map[string]string) ArgMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(ArgMap, 0, len(keys))
	for _, k := range keys {
		out = append(out, ArgEntry{Name: k, Msg: m[k]})
	}
	return out
}

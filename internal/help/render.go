// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package help

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/specialistvlad/helptask/internal/ctxlog"
	"github.com/specialistvlad/helptask/internal/task"
)

// Format selects how descriptors are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

const (
	DefaultProgram = "helptask"
	DefaultWidth   = 80

	indent    = "  "
	bodyInset = "      "
)

// Renderer prints the help of the tasks in a registry.
type Renderer struct {
	Out     io.Writer
	Program string
	Format  Format
	Width   int
	Color   bool
}

// Render prints help for the tasks in reg. With no args it lists every
// documented task; otherwise args[0] names the task to describe. An unknown
// name is reported and rendering continues.
func (r *Renderer) Render(ctx context.Context, reg *task.Registry, args []string) error {
	logger := ctxlog.FromContext(ctx)

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 0 && !reg.Has(name) {
		logger.Warn("Help requested for unknown task.", "task", name)
		if r.format() == FormatText {
			fmt.Fprintln(r.Out)
			fmt.Fprintf(r.Out, "Invalid task name: `%s`\n", name)
		}
	}

	if name == "" {
		return r.renderListing(reg)
	}
	return r.renderDetail(reg, name)
}

func (r *Renderer) renderListing(reg *task.Registry) error {
	if r.format() == FormatText {
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, r.heading("Usage"))
		fmt.Fprintf(r.Out, "%s%s [TASK] [OPTIONS...]\n", indent, r.program())
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, r.heading("All Tasks:"))
	}

	for _, name := range reg.Names() {
		t, _ := reg.Get(name)
		h, err := Normalize(t)
		if err != nil {
			return err
		}
		if h == nil {
			continue
		}
		if err := r.Print(h); err != nil {
			return err
		}
	}

	if r.format() == FormatText {
		fmt.Fprintln(r.Out)
	}
	return nil
}

func (r *Renderer) renderDetail(reg *task.Registry, name string) error {
	if r.format() == FormatText {
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, r.heading("Usage"))
	}

	t, ok := reg.Get(name)
	if ok {
		h, err := Normalize(t)
		if err != nil {
			return err
		}
		if h != nil {
			if r.format() == FormatText {
				fmt.Fprintf(r.Out, "%s%s %s [OPTIONS...]\n", indent, r.program(), name)
				fmt.Fprintln(r.Out)
			}
			if err := r.Print(h); err != nil {
				return err
			}
		}
	}

	if r.format() == FormatText {
		fmt.Fprintln(r.Out)
	}
	return nil
}

// Print writes a single normalized descriptor.
func (r *Renderer) Print(h *Help) error {
	if r.format() == FormatJSON {
		data, err := json.Marshal(h)
		if err != nil {
			return fmt.Errorf("failed to encode help for %q: %w", h.Name, err)
		}
		_, err = fmt.Fprintln(r.Out, string(data))
		return err
	}

	var b strings.Builder
	b.WriteString(indent + r.taskName(h.Name) + "\n")
	for _, line := range r.wrap(h.Msg, bodyInset) {
		b.WriteString(bodyInset + line + "\n")
	}
	if len(h.Deps) > 0 {
		b.WriteString(bodyInset + "deps: " + strings.Join(h.Deps, ", ") + "\n")
	}

	flags := make([]string, len(h.Args))
	widest := 0
	for i, arg := range h.Args {
		flags[i] = flagList(arg)
		if len(flags[i]) > widest {
			widest = len(flags[i])
		}
	}
	for i, arg := range h.Args {
		if arg.Msg == "" {
			b.WriteString(bodyInset + flags[i] + "\n")
			continue
		}
		pad := strings.Repeat(" ", widest-len(flags[i])+2)
		cont := bodyInset + strings.Repeat(" ", widest+2)
		for j, line := range r.wrap(arg.Msg, cont) {
			if j == 0 {
				b.WriteString(bodyInset + flags[i] + pad + line + "\n")
			} else {
				b.WriteString(cont + line + "\n")
			}
		}
	}

	_, err := io.WriteString(r.Out, b.String())
	return err
}

func flagList(arg Argument) string {
	names := append([]string{arg.Name}, arg.Aliases...)
	for i, n := range names {
		if len(n) == 1 {
			names[i] = "-" + n
		} else {
			names[i] = "--" + n
		}
	}
	return strings.Join(names, ", ")
}

// wrap splits msg into lines that fit the configured width after prefix.
func (r *Renderer) wrap(msg, prefix string) []string {
	if msg == "" {
		return nil
	}
	width := r.Width
	if width <= 0 {
		width = DefaultWidth
	}
	limit := width - len(prefix)
	if limit < 20 {
		limit = 20
	}
	return strings.Split(wordwrap.WrapString(msg, uint(limit)), "\n")
}

func (r *Renderer) heading(s string) string {
	if !r.Color {
		return s
	}
	return color.New(color.OpUnderscore).Sprint(s)
}

func (r *Renderer) taskName(s string) string {
	if !r.Color {
		return s
	}
	return color.FgCyan.Sprint(s)
}

func (r *Renderer) format() Format {
	if r.Format == "" {
		return FormatText
	}
	return r.Format
}

func (r *Renderer) program() string {
	if r.Program == "" {
		return DefaultProgram
	}
	return r.Program
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid help format %q: must be 'text' or 'json'", s)
	}
}

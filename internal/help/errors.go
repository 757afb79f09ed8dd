// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package help

import (
	"errors"
	"fmt"
)

// ErrArgument is matched by every ArgumentError.
var ErrArgument = errors.New("invalid help descriptor")

// ArgumentError reports a help descriptor that cannot be normalized.
type ArgumentError struct {
	Task string
	Msg  string
}

func (e *ArgumentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Task == "" {
		return e.Msg
	}
	return fmt.Sprintf("task %q: %s", e.Task, e.Msg)
}

func (e *ArgumentError) Unwrap() error { return ErrArgument }

func argumentErrorf(taskName, format string, args ...any) error {
	return &ArgumentError{Task: taskName, Msg: fmt.Sprintf(format, args...)}
}

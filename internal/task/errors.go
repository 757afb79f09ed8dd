package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidName = errors.New("invalid task name")
	ErrUnknownTask = errors.New("unknown task")
	ErrCycle       = errors.New("dependency cycle detected")
)

// CycleError reports the dependency chain that loops back on itself.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if e == nil || len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCycle.Error(), strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

func invalidNamef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidName, fmt.Sprintf(format, args...))
}

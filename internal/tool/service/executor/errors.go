package executor

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timeout")

// CommandError is returned when a command cannot be run at all.
type CommandError struct {
	Cmd   string
	Stage string
	Cause error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Cmd, e.Cause)
}

func (e *CommandError) Unwrap() error { return e.Cause }

// BinaryNotFoundError is returned when none of the candidate executables exist.
type BinaryNotFoundError struct {
	Candidates []string
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("none of %v found in PATH", e.Candidates)
}

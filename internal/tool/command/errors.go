package command

import "fmt"

// UnknownTypeError is returned for a command whose type is not recognised.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown command type '%s'", e.Type)
}

// MissingFieldError is returned when a required field is absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}

func (e *MissingFieldError) InvalidInput() bool { return true }

// InvalidFilterError is returned for a glob type filter outside file, directory and all.
type InvalidFilterError struct {
	Value string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("type_filter must be file, directory or all, got %q", e.Value)
}

func (e *InvalidFilterError) InvalidInput() bool { return true }

// DecodeError wraps a failure to map raw arguments onto a command.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return e.Cause.Error()
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func (e *DecodeError) InvalidInput() bool { return true }

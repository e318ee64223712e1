package sandbox

import "fmt"

// PathOutsideRootError is returned when path confinement is enabled and a
// path resolves outside the project root.
type PathOutsideRootError struct {
	Path string
}

func (e *PathOutsideRootError) Error() string {
	return fmt.Sprintf("path outside project root: %s", e.Path)
}

// RootNotDirectoryError is returned when the project root is not a directory.
type RootNotDirectoryError struct {
	Root  string
	Cause error
}

func (e *RootNotDirectoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("project root %s: %v", e.Root, e.Cause)
	}
	return fmt.Sprintf("project root is not a directory: %s", e.Root)
}

func (e *RootNotDirectoryError) Unwrap() error { return e.Cause }

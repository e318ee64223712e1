package toolmanager

import "context"

// toolImpl defines the interface for individual tools.
type toolImpl interface {
	// Name returns the tool's identifier.
	Name() string

	// Execute runs the tool with the decoded call arguments and returns the
	// text sent back to the model. Errors are reserved for cancellation;
	// tool failures belong in the returned text.
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// describer is implemented by tools that can summarise a request for display.
type describer interface {
	Describe(args map[string]any) string
}

package workflow

import "github.com/Cyclone1070/fastctx/internal/result"

// Event is the interface for all workflow events.
// UI handles events via type switch.
type Event interface {
	isEvent()
}

// StatusEvent reports a setup step such as fetching the session token.
type StatusEvent struct {
	Message string
}

func (StatusEvent) isEvent() {}

// TurnStartEvent is emitted before each model exchange. Turn is 1-indexed.
type TurnStartEvent struct {
	Turn  int
	Total int
}

func (TurnStartEvent) isEvent() {}

// ToolStartEvent is emitted when a tool execution begins.
type ToolStartEvent struct {
	ToolName       string
	RequestDisplay string // e.g., "4 commands"
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent is emitted when a tool completes.
type ToolEndEvent struct {
	ToolName string
	Failed   bool
}

func (ToolEndEvent) isEvent() {}

// ForcedAnswerEvent is emitted when the model is told to answer now.
type ForcedAnswerEvent struct{}

func (ForcedAnswerEvent) isEvent() {}

// DoneEvent is emitted when the search completes, whatever the outcome.
type DoneEvent struct {
	Result *result.Result
}

func (DoneEvent) isEvent() {}

package models

// Role identifies the author of a conversation message. Values are the
// numeric codes the remote service expects on the wire.
type Role int

const (
	RoleUser       Role = 1
	RoleAssistant  Role = 2
	RoleToolResult Role = 4
	RoleSystem     Role = 5
)

// String returns a readable role name.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	case RoleToolResult:
		return "tool_result"
	case RoleSystem:
		return "system"
	default:
		return "unknown"
	}
}

// ToolCall records a tool invocation issued by the model.
type ToolCall struct {
	ID       string
	Name     string
	ArgsJSON string
}

// Message is one entry in the conversation history.
type Message struct {
	Role    Role
	Content string

	// ToolCall is set on assistant messages that invoked a tool.
	ToolCall *ToolCall

	// ReplyTo links a tool result to the call it answers.
	ReplyTo string
}

// Credentials authenticate one search session.
type Credentials struct {
	APIKey string
	Token  string
}

// TurnRequest is everything needed to ask the model for its next move.
type TurnRequest struct {
	Credentials Credentials
	Messages    []Message

	// ToolDefinitions is the JSON array of tools offered to the model.
	ToolDefinitions string
}

// Reply is the interpreted model output for one turn.
type Reply struct {
	// Text is the reasoning preceding a tool call, or the full decoded text
	// when no call was found.
	Text string

	// Call is nil when the model answered in free text.
	Call *Call
}

// Call is a tool invocation recovered from model output.
type Call struct {
	Name     string
	Args     map[string]any
	ArgsJSON string
}

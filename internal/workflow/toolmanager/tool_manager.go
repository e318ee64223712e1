package toolmanager

import (
	"context"
	"fmt"
	"sort"

	"github.com/Cyclone1070/fastctx/internal/provider/models"
	"github.com/Cyclone1070/fastctx/internal/workflow"
)

type ToolManager struct {
	registry map[string]toolImpl
}

func NewToolManager(tools ...toolImpl) *ToolManager {
	tm := &ToolManager{
		registry: make(map[string]toolImpl),
	}
	for _, t := range tools {
		tm.Register(t)
	}
	return tm
}

func (m *ToolManager) Register(t toolImpl) {
	m.registry[t.Name()] = t
}

// Names returns the registered tool names, sorted.
func (m *ToolManager) Names() []string {
	names := make([]string, 0, len(m.registry))
	for name := range m.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs call and returns the tool_result message answering it.
// An unknown tool yields an error message for the model rather than a Go
// error, so the conversation can continue.
func (m *ToolManager) Execute(ctx context.Context, call models.ToolCall, args map[string]any, events chan<- workflow.Event) (models.Message, error) {
	t, ok := m.registry[call.Name]
	if !ok {
		if events != nil {
			events <- workflow.ToolStartEvent{ToolName: call.Name}
			events <- workflow.ToolEndEvent{ToolName: call.Name, Failed: true}
		}
		return models.Message{
			Role:    models.RoleToolResult,
			Content: fmt.Sprintf("Error: tool %q does not exist.", call.Name),
			ReplyTo: call.ID,
		}, nil
	}

	if events != nil {
		display := ""
		if d, ok := t.(describer); ok {
			display = d.Describe(args)
		}
		events <- workflow.ToolStartEvent{
			ToolName:       call.Name,
			RequestDisplay: display,
		}
	}

	out, err := t.Execute(ctx, args)
	if err == nil {
		err = ctx.Err()
	}
	if events != nil {
		events <- workflow.ToolEndEvent{ToolName: call.Name, Failed: err != nil}
	}
	if err != nil {
		return models.Message{}, err
	}

	return models.Message{
		Role:    models.RoleToolResult,
		Content: out,
		ReplyTo: call.ID,
	}, nil
}

package toolmanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/fastctx/internal/provider/models"
	"github.com/Cyclone1070/fastctx/internal/workflow"
)

type mockTool struct {
	name        string
	executeFunc func(ctx context.Context, args map[string]any) (string, error)
}

func (m *mockTool) Name() string { return m.name }
func (m *mockTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, args)
	}
	return "ok", nil
}

type describingTool struct {
	mockTool
}

func (d *describingTool) Describe(args map[string]any) string { return "described" }

func TestRegister_DuplicateNameReplaces(t *testing.T) {
	tm := NewToolManager()
	tm.Register(&mockTool{name: "x", executeFunc: func(context.Context, map[string]any) (string, error) { return "v1", nil }})
	tm.Register(&mockTool{name: "x", executeFunc: func(context.Context, map[string]any) (string, error) { return "v2", nil }})

	assert.Equal(t, []string{"x"}, tm.Names())
	msg, err := tm.Execute(context.Background(), models.ToolCall{ID: "c", Name: "x"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", msg.Content)
}

func TestNames_Sorted(t *testing.T) {
	tm := NewToolManager(&mockTool{name: "z"}, &mockTool{name: "a"}, &mockTool{name: "m"})
	assert.Equal(t, []string{"a", "m", "z"}, tm.Names())
}

func TestExecute_Success(t *testing.T) {
	var got map[string]any
	tm := NewToolManager(&mockTool{
		name: "restricted_exec",
		executeFunc: func(_ context.Context, args map[string]any) (string, error) {
			got = args
			return "<command1_result>\nx\n</command1_result>", nil
		},
	})
	events := make(chan workflow.Event, 4)
	args := map[string]any{"command1": map[string]any{"type": "ls"}}

	msg, err := tm.Execute(context.Background(), models.ToolCall{ID: "call-1", Name: "restricted_exec"}, args, events)

	require.NoError(t, err)
	assert.Equal(t, models.Message{
		Role:    models.RoleToolResult,
		Content: "<command1_result>\nx\n</command1_result>",
		ReplyTo: "call-1",
	}, msg)
	assert.Equal(t, args, got)
	assert.Equal(t, workflow.ToolStartEvent{ToolName: "restricted_exec"}, <-events)
	assert.Equal(t, workflow.ToolEndEvent{ToolName: "restricted_exec"}, <-events)
}

func TestExecute_DescriberUsedForDisplay(t *testing.T) {
	tm := NewToolManager(&describingTool{mockTool{name: "d"}})
	events := make(chan workflow.Event, 4)

	_, err := tm.Execute(context.Background(), models.ToolCall{ID: "1", Name: "d"}, nil, events)

	require.NoError(t, err)
	assert.Equal(t, workflow.ToolStartEvent{ToolName: "d", RequestDisplay: "described"}, <-events)
}

func TestExecute_UnknownTool(t *testing.T) {
	tm := NewToolManager(&mockTool{name: "restricted_exec"})
	events := make(chan workflow.Event, 4)

	msg, err := tm.Execute(context.Background(), models.ToolCall{ID: "call-9", Name: "shell"}, nil, events)

	require.NoError(t, err)
	assert.Equal(t, `Error: tool "shell" does not exist.`, msg.Content)
	assert.Equal(t, models.RoleToolResult, msg.Role)
	assert.Equal(t, "call-9", msg.ReplyTo)
	assert.IsType(t, workflow.ToolStartEvent{}, <-events)
	assert.Equal(t, workflow.ToolEndEvent{ToolName: "shell", Failed: true}, <-events)
}

func TestExecute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tm := NewToolManager(&mockTool{
		name: "slow",
		executeFunc: func(context.Context, map[string]any) (string, error) {
			cancel()
			return "partial", nil
		},
	})

	_, err := tm.Execute(ctx, models.ToolCall{ID: "1", Name: "slow"}, nil, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

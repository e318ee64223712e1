package loop

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/fastctx/internal/tool"
	"github.com/Cyclone1070/fastctx/internal/tool/command"
)

// execTool serves restricted_exec calls from a workspace.
type execTool struct {
	ws Workspace
}

func (execTool) Name() string { return tool.NameRestrictedExec }

func (t execTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	return t.ws.RunBatch(ctx, args), nil
}

func (execTool) Describe(args map[string]any) string {
	n := 0
	for k := range args {
		if strings.HasPrefix(k, command.KeyPrefix) {
			n++
		}
	}
	if n == 1 {
		return "1 command"
	}
	return fmt.Sprintf("%d commands", n)
}

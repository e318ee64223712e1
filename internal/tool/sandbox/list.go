package sandbox

import (
	"context"

	"github.com/Cyclone1070/fastctx/internal/tool/command"
)

// List runs ls on the directory.
func (e *Executor) List(ctx context.Context, c command.List) string {
	target, err := e.Resolve(c.Path)
	if err != nil {
		return "Error: " + err.Error()
	}

	bin, err := e.runner.FindBinary("ls")
	if err != nil {
		return "Error: " + err.Error()
	}
	args := []string{bin}
	if c.LongFormat {
		args = append(args, "-l")
	}
	if c.All {
		args = append(args, "-a")
	}
	args = append(args, target)

	res, err := e.runner.RunWithTimeout(ctx, args, "", nil, seconds(e.cfg.ListTimeout))
	if msg, failed := failure(err); failed {
		return msg
	}
	return e.truncate(e.Remap(firstNonEmpty(res, "")))
}

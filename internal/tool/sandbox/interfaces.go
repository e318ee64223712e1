package sandbox

import (
	"context"
	"time"

	"github.com/Cyclone1070/fastctx/internal/tool/service/executor"
)

// commandRunner runs external inspection binaries.
type commandRunner interface {
	FindBinary(candidates ...string) (string, error)
	RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*executor.Result, error)
}

// ignoreMatcher filters in-process directory walks.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

package sandbox

import (
	"context"
	"path/filepath"
	"strings"
)

// RepoMap renders the top level of the project for the opening prompt,
// falling back to a sorted listing when tree is unavailable or fails.
func (e *Executor) RepoMap(ctx context.Context) string {
	if bin, err := e.runner.FindBinary("tree"); err == nil {
		res, err := e.runner.RunWithTimeout(ctx, []string{bin, "-L", "1", e.root}, "", nil, seconds(e.cfg.ListTimeout))
		if _, failed := failure(err); !failed && res != nil && res.Stdout != "" {
			return e.Remap(res.Stdout)
		}
	}

	lines := []string{e.virtualRoot}
	names, _ := readDirNames(e.root)
	for _, name := range names {
		p := filepath.Join(e.root, name)
		if e.ignored(p, isDirectory(p)) {
			continue
		}
		lines = append(lines, treeBranch+name)
	}
	return strings.Join(lines, "\n")
}

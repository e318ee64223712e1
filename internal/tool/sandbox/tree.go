package sandbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Cyclone1070/fastctx/internal/tool/command"
)

const (
	treeBranch = "├── "
	treeIndent = "│   "
)

// Tree renders the directory with the tree utility, or with an in-process
// walk when tree is not installed.
func (e *Executor) Tree(ctx context.Context, c command.Tree) string {
	target, err := e.Resolve(c.Path)
	if err != nil {
		return "Error: " + err.Error()
	}
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		return fmt.Sprintf("Error: dir not found: %s", c.Path)
	}

	bin, err := e.runner.FindBinary("tree")
	if err != nil {
		levels := c.Levels
		if levels <= 0 {
			levels = e.cfg.TreeDefaultDepth
		}
		return e.truncate(e.walkTree(target, c.Path, levels))
	}

	args := []string{bin, target}
	if c.Levels > 0 {
		args = append(args, "-L", strconv.Itoa(c.Levels))
	}
	res, err := e.runner.RunWithTimeout(ctx, args, "", nil, seconds(e.cfg.TreeTimeout))
	if msg, failed := failure(err); failed {
		return msg
	}
	return e.truncate(e.Remap(firstNonEmpty(res, "")))
}

// walkTree renders up to levels of dir below a header line naming it as the
// model did. Hidden directories are listed but not descended into, and the
// output stops at TreeMaxLines lines.
func (e *Executor) walkTree(dir, header string, levels int) string {
	lines := []string{header}
	limit := e.cfg.TreeMaxLines

	var walk func(dir, prefix string, depth int)
	walk = func(dir, prefix string, depth int) {
		if depth >= levels || len(lines) >= limit {
			return
		}
		names, err := readDirNames(dir)
		if err != nil {
			return
		}
		for _, name := range names {
			if len(lines) >= limit {
				return
			}
			p := filepath.Join(dir, name)
			isDir := isDirectory(p)
			if e.ignored(p, isDir) {
				continue
			}
			lines = append(lines, prefix+treeBranch+name)
			if isDir && !strings.HasPrefix(name, ".") {
				walk(p, prefix+treeIndent, depth+1)
			}
		}
	}
	walk(dir, "", 0)

	if len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n")
}

// readDirNames returns the sorted entry names of dir.
func readDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	sort.Strings(names)
	return names, nil
}

// isDirectory follows symlinks.
func isDirectory(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

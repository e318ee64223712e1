package sandbox

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Cyclone1070/fastctx/internal/tool/command"
)

// Glob matches pattern below the directory, with "**" matching any number
// of directories. Dot entries are skipped unless the pattern names one
// explicitly, as in ".github/*".
func (e *Executor) Glob(c command.Glob) string {
	target, err := e.Resolve(c.Path)
	if err != nil {
		return "Error: " + err.Error()
	}
	full := filepath.Join(target, c.Pattern)
	if strings.HasPrefix(c.Pattern, "/") {
		if full, err = e.Resolve(c.Pattern); err != nil {
			return "Error: " + err.Error()
		}
	}
	if full, err = filepath.Abs(full); err != nil {
		return "Error: " + err.Error()
	}

	base, pattern := doublestar.SplitPattern(filepath.ToSlash(full))
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Sprintf("Error: invalid glob pattern: %s", c.Pattern)
	}
	base = filepath.FromSlash(base)
	dotted := namesDotEntry(pattern)

	var matches []string
	_ = doublestar.GlobWalk(os.DirFS(base), pattern, func(rel string, _ fs.DirEntry) error {
		if !dotted && hasDotEntry(rel) {
			return nil
		}
		p := filepath.Join(base, filepath.FromSlash(rel))
		isDir := isDirectory(p)
		switch c.TypeFilter {
		case command.FilterFile:
			if !isRegular(p) {
				return nil
			}
		case command.FilterDirectory:
			if !isDir {
				return nil
			}
		}
		if e.ignored(p, isDir) {
			return nil
		}
		matches = append(matches, p)
		return nil
	}, doublestar.WithNoFollow())

	if len(matches) == 0 {
		return NoMatches
	}
	sort.Strings(matches)
	if len(matches) > e.cfg.GlobMaxResults {
		matches = matches[:e.cfg.GlobMaxResults]
	}
	for i, m := range matches {
		matches[i] = e.Remap(m)
	}
	return strings.Join(matches, "\n")
}

// namesDotEntry reports whether some pattern segment starts with a dot.
func namesDotEntry(pattern string) bool {
	for _, seg := range strings.Split(pattern, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}

func hasDotEntry(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." {
			return true
		}
	}
	return false
}

func isRegular(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Package sandbox executes model-requested inspection commands against a
// project tree exposed to the model under a virtual root.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Cyclone1070/fastctx/internal/config"
	"github.com/Cyclone1070/fastctx/internal/tool/helper/content"
	"github.com/Cyclone1070/fastctx/internal/tool/service/executor"
	"github.com/Cyclone1070/fastctx/internal/tool/service/git"
)

// Sentinel outputs returned to the model.
const (
	NoMatches = "(no matches)"
	TimedOut  = "Error: timed out"
)

// Executor runs commands for one search session. Pattern history is safe for
// concurrent use; everything else is read-only after New.
type Executor struct {
	root        string
	virtualRoot string
	cfg         config.SandboxConfig
	runner      commandRunner
	ignore      ignoreMatcher
	log         *zap.Logger

	mu       sync.Mutex
	patterns []string
}

// New creates an Executor rooted at root, which must be an existing directory.
func New(root string, cfg config.SandboxConfig, runner commandRunner, logger *zap.Logger) (*Executor, error) {
	if runner == nil {
		panic("runner is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &RootNotDirectoryError{Root: root, Cause: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &RootNotDirectoryError{Root: abs, Cause: err}
	}
	if !info.IsDir() {
		return nil, &RootNotDirectoryError{Root: abs}
	}

	var ignore ignoreMatcher = git.NoOpMatcher{}
	if cfg.RespectGitignore {
		m, err := git.NewIgnoreMatcher(abs, git.OSFileSystem{})
		if err != nil {
			logger.Warn("gitignore unavailable, walking unfiltered", zap.Error(err))
		} else {
			ignore = m
		}
	}

	return &Executor{
		root:        abs,
		virtualRoot: cfg.VirtualRoot,
		cfg:         cfg,
		runner:      runner,
		ignore:      ignore,
		log:         logger.Named("sandbox"),
	}, nil
}

// Root returns the absolute project root.
func (e *Executor) Root() string { return e.root }

// VirtualRoot returns the prefix the model sees instead of Root.
func (e *Executor) VirtualRoot() string { return e.virtualRoot }

// Patterns returns every distinct search pattern issued so far, in
// first-seen order.
func (e *Executor) Patterns() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[string]bool, len(e.patterns))
	out := make([]string, 0, len(e.patterns))
	for _, p := range e.patterns {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func (e *Executor) recordPattern(p string) {
	e.mu.Lock()
	e.patterns = append(e.patterns, p)
	e.mu.Unlock()
}

// Resolve maps a model-visible path to a real path. Paths under the virtual
// root are re-rooted onto the project; anything else is used verbatim unless
// confinement is enabled.
func (e *Executor) Resolve(virtual string) (string, error) {
	target := virtual
	if strings.HasPrefix(virtual, e.virtualRoot) {
		rel := strings.TrimLeft(virtual[len(e.virtualRoot):], "/")
		target = filepath.Join(e.root, filepath.FromSlash(rel))
	}
	if e.cfg.ConfinePaths && !e.within(target) {
		return "", &PathOutsideRootError{Path: virtual}
	}
	return target, nil
}

func (e *Executor) within(target string) bool {
	abs, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(e.root, abs)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Remap rewrites every occurrence of the real root to the virtual root.
func (e *Executor) Remap(text string) string {
	if e.root == string(filepath.Separator) {
		return text
	}
	return strings.ReplaceAll(text, e.root, e.virtualRoot)
}

func (e *Executor) truncate(text string) string {
	return content.Truncate(text, e.cfg.MaxResultLines, e.cfg.MaxLineChars)
}

// relative returns target relative to the root in slash form, or "" if outside it.
func (e *Executor) relative(target string) string {
	rel, err := filepath.Rel(e.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

func (e *Executor) ignored(target string, isDir bool) bool {
	rel := e.relative(target)
	return rel != "" && rel != "." && e.ignore.ShouldIgnore(rel, isDir)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// failure converts a runner error into model-facing text. It reports false
// when the command ran and its output should be used, which includes
// non-zero exits.
func failure(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	if errors.Is(err, executor.ErrTimeout) {
		return TimedOut, true
	}
	var cmdErr *executor.CommandError
	if errors.As(err, &cmdErr) {
		return "Error: " + cmdErr.Cause.Error(), true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "Error: " + err.Error(), true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) || errors.Is(err, exec.ErrWaitDelay) {
		return "", false
	}
	return fmt.Sprintf("Error: %v", err), true
}

// firstNonEmpty returns stdout, else stderr, else fallback.
func firstNonEmpty(res *executor.Result, fallback string) string {
	switch {
	case res == nil:
		return fallback
	case res.Stdout != "":
		return res.Stdout
	case res.Stderr != "":
		return res.Stderr
	default:
		return fallback
	}
}

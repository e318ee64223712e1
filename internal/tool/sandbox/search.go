package sandbox

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Cyclone1070/fastctx/internal/tool/command"
)

// rgCandidates are tried in order when locating ripgrep.
var rgCandidates = []string{"rg", "/opt/homebrew/bin/rg", "/usr/local/bin/rg"}

// Search runs ripgrep and records the pattern in the session history, even
// when the search fails.
func (e *Executor) Search(ctx context.Context, c command.Search) string {
	e.recordPattern(c.Pattern)
	return e.search(ctx, c)
}

func (e *Executor) search(ctx context.Context, c command.Search) string {
	target, err := e.Resolve(c.Path)
	if err != nil {
		return "Error: " + err.Error()
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Sprintf("Error: path does not exist: %s", c.Path)
	}

	bin, err := e.runner.FindBinary(rgCandidates...)
	if err != nil {
		return "Error: rg not found (brew install ripgrep)"
	}

	args := []string{bin, "--no-heading", "-n", "--max-count", strconv.Itoa(e.cfg.SearchMaxCount), "-e", c.Pattern, target}
	for _, g := range c.Include {
		args = append(args, "--glob", g)
	}
	for _, g := range c.Exclude {
		args = append(args, "--glob", "!"+g)
	}
	env := append(os.Environ(), "RIPGREP_CONFIG_PATH=")

	res, err := e.runner.RunWithTimeout(ctx, args, "", env, seconds(e.cfg.SearchTimeout))
	if msg, failed := failure(err); failed {
		return msg
	}
	return e.truncate(e.Remap(firstNonEmpty(res, NoMatches)))
}

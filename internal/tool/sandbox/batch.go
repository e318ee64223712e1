package sandbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Cyclone1070/fastctx/internal/tool/command"
)

// Execute runs a single decoded command.
func (e *Executor) Execute(ctx context.Context, cmd command.Command) string {
	switch c := cmd.(type) {
	case command.Search:
		return e.Search(ctx, c)
	case command.ReadFile:
		return e.ReadFile(c)
	case command.Tree:
		return e.Tree(ctx, c)
	case command.List:
		return e.List(ctx, c)
	case command.Glob:
		return e.Glob(c)
	default:
		return fmt.Sprintf("Error: unknown command type '%s'", cmd.Type())
	}
}

// RunBatch executes every commandN entry of a restricted_exec call and
// returns the results wrapped as <commandN_result> blocks in ordinal order.
// Up to cfg.Workers commands run at once; search patterns are recorded in
// ordinal order regardless.
func (e *Executor) RunBatch(ctx context.Context, args map[string]any) string {
	entries := command.ParseBatch(args)

	for _, entry := range entries {
		if p, ok := searchPattern(entry, args); ok {
			e.recordPattern(p)
		}
	}

	results := make([]string, len(entries))
	var g errgroup.Group
	g.SetLimit(max(e.cfg.Workers, 1))
	for i, entry := range entries {
		g.Go(func() error {
			results[i] = e.runEntry(ctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	var b strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&b, "<%s_result>\n%s\n</%s_result>", entry.Key, results[i], entry.Key)
	}
	return b.String()
}

func (e *Executor) runEntry(ctx context.Context, entry command.Entry) string {
	if entry.Err != nil {
		var unknown *command.UnknownTypeError
		if errors.As(entry.Err, &unknown) {
			return "Error: " + unknown.Error()
		}
		return fmt.Sprintf("Error: invalid arguments for %s: %v", entry.Key, entry.Err)
	}

	start := time.Now()
	var out string
	if s, ok := entry.Command.(command.Search); ok {
		// Already recorded by RunBatch.
		out = e.search(ctx, s)
	} else {
		out = e.Execute(ctx, entry.Command)
	}
	e.log.Debug("command finished",
		zap.String("key", entry.Key),
		zap.String("type", entry.Command.Type()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(out)))
	return out
}

// searchPattern returns the pattern of an rg entry, including entries that
// failed to decode but still carry a pattern string.
func searchPattern(entry command.Entry, args map[string]any) (string, bool) {
	if s, ok := entry.Command.(command.Search); ok {
		return s.Pattern, true
	}
	if entry.Err == nil {
		return "", false
	}
	raw, _ := args[entry.Key].(map[string]any)
	if typ, _ := raw["type"].(string); typ != command.TypeSearch {
		return "", false
	}
	p, ok := raw["pattern"].(string)
	return p, ok && p != ""
}

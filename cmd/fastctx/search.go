package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/fastctx/internal/result"
	"github.com/Cyclone1070/fastctx/internal/ui"
	uiservices "github.com/Cyclone1070/fastctx/internal/ui/services"
	"github.com/Cyclone1070/fastctx/internal/workflow"
	"github.com/Cyclone1070/fastctx/internal/workflow/loop"
)

type searchOptions struct {
	Root        string
	MaxTurns    int
	MaxCommands int
	JSON        bool
	Plain       bool
}

var searchOpts searchOptions

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search a project for the files and line ranges relevant to a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchOpts.Root, "root", "r", ".", "Project root to search")
	searchCmd.Flags().IntVar(&searchOpts.MaxTurns, "max-turns", 0, "Tool rounds before the model must answer (0 = config)")
	searchCmd.Flags().IntVar(&searchOpts.MaxCommands, "max-commands", 0, "Commands the model may issue per round (0 = config)")
	searchCmd.Flags().BoolVar(&searchOpts.JSON, "json", false, "Print the result as JSON")
	searchCmd.Flags().BoolVar(&searchOpts.Plain, "plain", false, "Print plain text even on a terminal")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if searchOpts.MaxTurns > 0 {
		cfg.Search.MaxTurns = searchOpts.MaxTurns
	}
	if searchOpts.MaxCommands > 0 {
		cfg.Search.MaxCommands = searchOpts.MaxCommands
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	deps, err := newDependencies(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Logger.Sync() }()

	root, err := filepath.Abs(searchOpts.Root)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}
	req := loop.Request{
		Query:       strings.Join(args, " "),
		ProjectRoot: root,
		MaxTurns:    cfg.Search.MaxTurns,
		MaxCommands: cfg.Search.MaxCommands,
	}

	out := cmd.OutOrStdout()
	if !searchOpts.JSON && !searchOpts.Plain && isTerminal(out) {
		return runInteractive(cmd.Context(), deps, req)
	}
	res := deps.NewSearcher(nil).Search(cmd.Context(), req)
	return printResult(out, res, searchOpts.JSON)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printResult writes the host-facing rendering of res.
func printResult(w io.Writer, res *result.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Payload())
	}
	_, err := fmt.Fprintln(w, result.FormatText(res))
	return err
}

// runInteractive shows live progress while the search runs. The final view
// stays on screen, so nothing is printed afterwards.
func runInteractive(ctx context.Context, deps Dependencies, req loop.Request) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan workflow.Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(events)
		deps.NewSearcher(events).Search(ctx, req)
	}()

	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	u := ui.NewUI(req.Query, events, cancel, uiservices.NewGlamourRenderer(), spinnerFactory)
	_, err := u.Run()

	// The UI may stop reading before the search returns.
	cancel()
	for range events {
	}
	<-done
	return err
}

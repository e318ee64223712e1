// Package main provides the fastctx command: a fast, read-only code search
// driven by the Windsurf search model.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cyclone1070/fastctx/internal/config"
	"github.com/Cyclone1070/fastctx/internal/credential"
	"github.com/Cyclone1070/fastctx/internal/logging"
	"github.com/Cyclone1070/fastctx/internal/provider/windsurf"
	"github.com/Cyclone1070/fastctx/internal/result"
	"github.com/Cyclone1070/fastctx/internal/tool/sandbox"
	"github.com/Cyclone1070/fastctx/internal/tool/service/executor"
	"github.com/Cyclone1070/fastctx/internal/workflow"
	"github.com/Cyclone1070/fastctx/internal/workflow/loop"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:           "fastctx",
	Short:         "Locate the code relevant to a question, fast",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log at debug level")
}

// searcher runs one search to completion.
type searcher interface {
	Search(ctx context.Context, req loop.Request) *result.Result
}

// Dependencies holds the components required to run a search.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// NewSearcher builds a searcher publishing progress on events, which may
	// be nil.
	NewSearcher func(events chan<- workflow.Event) searcher
}

// loadConfig reads the dotfile and environment, falling back to defaults
// when the dotfile is unusable.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}
	if debugFlag {
		cfg.Logging.Debug = true
	}
	return cfg
}

func newDependencies(cfg *config.Config) (Dependencies, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return Dependencies{}, err
	}

	client := windsurf.NewClient(windsurf.OptionsFromConfig(cfg.Protocol), logger)
	keys := credential.NewResolver()
	runner := executor.NewOSCommandExecutor(cfg.Sandbox)
	open := func(root string) (loop.Workspace, error) {
		ws, err := sandbox.New(root, cfg.Sandbox, runner, logger)
		if err != nil {
			return nil, err
		}
		return ws, nil
	}

	return Dependencies{
		Config: cfg,
		Logger: logger,
		NewSearcher: func(events chan<- workflow.Event) searcher {
			return loop.NewLoop(client, keys, open, events, logger)
		},
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

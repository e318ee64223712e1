package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/fastctx/internal/credential"
	"github.com/Cyclone1070/fastctx/internal/logging"
)

var (
	extractDBPath string
	extractJSON   bool
	extractReveal bool
)

var extractKeyCmd = &cobra.Command{
	Use:   "extract-key",
	Short: "Show the API key stored by the local Windsurf install",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := extractDBPath
		if path == "" {
			var err error
			if path, err = credential.DefaultStatePath(); err != nil {
				return err
			}
		}
		return runExtractKey(cmd.OutOrStdout(), path, extractJSON, extractReveal)
	},
}

func init() {
	rootCmd.AddCommand(extractKeyCmd)
	extractKeyCmd.Flags().StringVar(&extractDBPath, "db", "", "State database to read (default: platform location)")
	extractKeyCmd.Flags().BoolVar(&extractJSON, "json", false, "Print the result as JSON")
	extractKeyCmd.Flags().BoolVar(&extractReveal, "reveal", false, "Print the full key instead of a masked one")
}

type extractOutput struct {
	APIKey string `json:"api_key,omitempty"`
	DBPath string `json:"db_path"`
	Error  string `json:"error,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

func runExtractKey(w io.Writer, path string, asJSON, reveal bool) error {
	info, err := credential.Extract(path)

	out := extractOutput{DBPath: info.DBPath}
	if err != nil {
		out.Error = err.Error()
		var nf *credential.NotFoundError
		if errors.As(err, &nf) {
			out.Hint = nf.Hint
		}
	} else {
		out.APIKey = info.APIKey
		if !reveal {
			out.APIKey = logging.Redact(info.APIKey)
		}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(out); encErr != nil {
			return encErr
		}
		return err
	}

	fmt.Fprintf(w, "Database: %s\n", out.DBPath)
	if err != nil {
		if out.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", out.Hint)
		}
		return err
	}
	fmt.Fprintf(w, "API key: %s\n", out.APIKey)
	return nil
}

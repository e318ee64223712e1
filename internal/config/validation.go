package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Search validation
	if c.Search.MaxTurns < 1 {
		errs = append(errs, "search.max_turns must be >= 1")
	}
	if c.Search.MaxCommands < 1 {
		errs = append(errs, "search.max_commands must be >= 1")
	}

	// Sandbox validation
	if !strings.HasPrefix(c.Sandbox.VirtualRoot, "/") || len(c.Sandbox.VirtualRoot) < 2 {
		errs = append(errs, "sandbox.virtual_root must be an absolute path other than /")
	}
	if c.Sandbox.MaxResultLines < 1 {
		errs = append(errs, "sandbox.max_result_lines must be >= 1")
	}
	if c.Sandbox.MaxLineChars < 1 {
		errs = append(errs, "sandbox.max_line_chars must be >= 1")
	}
	if c.Sandbox.SearchMaxCount < 1 {
		errs = append(errs, "sandbox.search_max_count must be >= 1")
	}
	if c.Sandbox.GlobMaxResults < 1 {
		errs = append(errs, "sandbox.glob_max_results must be >= 1")
	}
	if c.Sandbox.TreeMaxLines < 1 {
		errs = append(errs, "sandbox.tree_max_lines must be >= 1")
	}
	if c.Sandbox.TreeDefaultDepth < 1 {
		errs = append(errs, "sandbox.tree_default_depth must be >= 1")
	}
	if c.Sandbox.SearchTimeout < 1 {
		errs = append(errs, "sandbox.search_timeout must be >= 1")
	}
	if c.Sandbox.TreeTimeout < 1 {
		errs = append(errs, "sandbox.tree_timeout must be >= 1")
	}
	if c.Sandbox.ListTimeout < 1 {
		errs = append(errs, "sandbox.list_timeout must be >= 1")
	}
	if c.Sandbox.MaxCommandOutputSize < 1 {
		errs = append(errs, "sandbox.max_command_output_size must be >= 1")
	}
	if c.Sandbox.GracefulShutdownMs < 1 {
		errs = append(errs, "sandbox.graceful_shutdown_ms must be >= 1")
	}
	if c.Sandbox.Workers < 1 {
		errs = append(errs, "sandbox.workers must be >= 1")
	}

	// Protocol validation
	if !strings.HasPrefix(c.Protocol.APIBase, "https://") {
		errs = append(errs, "protocol.api_base must be an https URL")
	}
	if !strings.HasPrefix(c.Protocol.AuthBase, "https://") {
		errs = append(errs, "protocol.auth_base must be an https URL")
	}
	if c.Protocol.Model == "" {
		errs = append(errs, "protocol.model is required")
	}
	if c.Protocol.UnaryTimeout < 1 {
		errs = append(errs, "protocol.unary_timeout must be >= 1")
	}
	if c.Protocol.StreamTimeout < 1 {
		errs = append(errs, "protocol.stream_timeout must be >= 1")
	}
	if c.Protocol.ConnectTimeoutMs < 1 {
		errs = append(errs, "protocol.connect_timeout_ms must be >= 1")
	}
	if c.Protocol.MinScanTextLen < 0 {
		errs = append(errs, "protocol.min_scan_text_len must be >= 0")
	}
	if c.Protocol.MinFragmentLen < 0 {
		errs = append(errs, "protocol.min_fragment_len must be >= 0")
	}
	if c.Protocol.MaxErrorBodyBytes < 1 {
		errs = append(errs, "protocol.max_error_body_bytes must be >= 1")
	}

	// Logging validation
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "logging.level must be one of debug, info, warn, error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

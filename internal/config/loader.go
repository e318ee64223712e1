package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "fastctx"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
)

// Environment overrides applied after the dotfile.
const (
	EnvMaxTurns    = "FC_MAX_TURNS"
	EnvMaxCommands = "FC_MAX_COMMANDS"
	EnvDebug       = "FC_DEBUG"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a production Loader using the real filesystem and environment
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}, getenv: os.Getenv}
}

// NewLoaderWithFS creates a Loader with a custom filesystem and environment (for testing)
func NewLoaderWithFS(fs FileSystem, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{fs: fs, getenv: getenv}
}

// Load reads configuration from ~/.config/fastctx/config.json, merges it with
// defaults, then applies environment overrides. Dotfile values override defaults.
// Returns error only for parse errors, permission issues, bad environment values
// or validation failures.
//
// NOTE: JSON keys are unmarshalled directly over the default configuration, so
// explicit zero values (e.g., 0, false, "") in the config file override defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := l.loadDotfile(cfg); err != nil {
		return nil, err
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) loadDotfile(cfg *Config) error {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return nil // Use defaults if can't get home dir
	}

	configPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)

	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, cfg)
}

func (l *Loader) applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(l.getenv(EnvMaxTurns)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxTurns, err)
		}
		cfg.Search.MaxTurns = n
	}
	if v := strings.TrimSpace(l.getenv(EnvMaxCommands)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxCommands, err)
		}
		cfg.Search.MaxCommands = n
	}
	if parseBool(l.getenv(EnvDebug)) {
		cfg.Logging.Debug = true
	}
	return nil
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}

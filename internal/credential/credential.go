// Package credential locates the Windsurf API key, either from the
// environment or from the editor's local state database.
package credential

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "modernc.org/sqlite"
)

// EnvAPIKey names the environment variable that takes precedence over
// discovery.
const EnvAPIKey = "WINDSURF_API_KEY"

const (
	keyPrefix  = "sk-"
	authQuery  = "SELECT value FROM ItemTable WHERE key = 'windsurfAuthStatus'"
	signInHint = "make sure Windsurf is installed and signed in"
)

// Info describes a key extracted from a state database.
type Info struct {
	APIKey string `json:"api_key"`
	DBPath string `json:"db_path"`
}

// Resolver finds the API key. Zero fields fall back to the process
// environment and the platform's state database location.
type Resolver struct {
	Getenv    func(string) string
	StatePath func() (string, error)
}

// NewResolver returns a Resolver bound to the real environment.
func NewResolver() *Resolver {
	return &Resolver{Getenv: os.Getenv, StatePath: DefaultStatePath}
}

// APIKey returns the key from WINDSURF_API_KEY, else from the local
// Windsurf install. Discovered keys must carry the sk- prefix.
func (r *Resolver) APIKey() (string, error) {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if key := getenv(EnvAPIKey); key != "" {
		return key, nil
	}

	statePath := r.StatePath
	if statePath == nil {
		statePath = DefaultStatePath
	}
	path, err := statePath()
	if err != nil {
		return "", &NotFoundError{Reason: "no state database location", Hint: "set " + EnvAPIKey, Cause: err}
	}

	info, err := Extract(path)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(info.APIKey, keyPrefix) {
		return "", &NotFoundError{Path: path, Reason: "stored apiKey has unexpected format", Hint: "set " + EnvAPIKey}
	}
	return info.APIKey, nil
}

// DefaultStatePath returns where Windsurf keeps state.vscdb on this platform.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return statePath(runtime.GOOS, os.Getenv, home)
}

func statePath(goos string, getenv func(string) string, home string) (string, error) {
	tail := filepath.Join("Windsurf", "User", "globalStorage", "state.vscdb")
	switch goos {
	case "darwin":
		if home == "" {
			return "", errors.New("home directory unknown")
		}
		return filepath.Join(home, "Library", "Application Support", tail), nil
	case "windows":
		appdata := getenv("APPDATA")
		if appdata == "" {
			return "", errors.New("APPDATA is not set")
		}
		return filepath.Join(appdata, tail), nil
	default:
		base := getenv("XDG_CONFIG_HOME")
		if base == "" {
			if home == "" {
				return "", errors.New("home directory unknown")
			}
			base = filepath.Join(home, ".config")
		}
		return filepath.Join(base, tail), nil
	}
}

// Extract reads the stored auth status from the state database at path.
// Unlike APIKey it accepts any non-empty key, so callers can show what was
// found.
func Extract(path string) (Info, error) {
	info := Info{DBPath: path}

	if _, err := os.Stat(path); err != nil {
		return info, &NotFoundError{Path: path, Reason: "state database not found", Hint: signInHint, Cause: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return info, &NotFoundError{Path: path, Reason: "cannot open state database", Cause: err}
	}
	defer db.Close()

	var raw string
	err = db.QueryRow(authQuery).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return info, &NotFoundError{Path: path, Reason: "no windsurfAuthStatus record", Hint: signInHint}
	case err != nil:
		return info, &NotFoundError{Path: path, Reason: "cannot read state database", Cause: err}
	}

	var status struct {
		APIKey string `json:"apiKey"`
	}
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return info, &NotFoundError{Path: path, Reason: "windsurfAuthStatus is not valid JSON", Cause: err}
	}
	if status.APIKey == "" {
		return info, &NotFoundError{Path: path, Reason: "apiKey field is empty", Hint: signInHint}
	}

	info.APIKey = status.APIKey
	return info, nil
}

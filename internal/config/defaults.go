package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Search   SearchConfig   `json:"search"`
	Sandbox  SandboxConfig  `json:"sandbox"`
	Protocol ProtocolConfig `json:"protocol"`
	Logging  LoggingConfig  `json:"logging"`
}

type SearchConfig struct {
	MaxTurns    int `json:"max_turns"`    // Default: 3 (tool rounds, plus one final answer round)
	MaxCommands int `json:"max_commands"` // Default: 8 (commands per round)
}

type SandboxConfig struct {
	VirtualRoot string `json:"virtual_root"` // Default: "/codebase"

	// Truncation
	MaxResultLines int `json:"max_result_lines"` // Default: 50
	MaxLineChars   int `json:"max_line_chars"`   // Default: 400

	// Per-operation limits
	SearchMaxCount   int `json:"search_max_count"`   // Default: 50 (rg --max-count)
	GlobMaxResults   int `json:"glob_max_results"`   // Default: 100
	TreeMaxLines     int `json:"tree_max_lines"`     // Default: 300 (in-process fallback)
	TreeDefaultDepth int `json:"tree_default_depth"` // Default: 3 (in-process fallback)

	// Timeouts (seconds)
	SearchTimeout int `json:"search_timeout"` // Default: 30
	TreeTimeout   int `json:"tree_timeout"`   // Default: 15
	ListTimeout   int `json:"list_timeout"`   // Default: 10

	// Command output capture
	MaxCommandOutputSize int64 `json:"max_command_output_size"` // Default: 10MB
	GracefulShutdownMs   int   `json:"graceful_shutdown_ms"`    // Default: 2000

	// Batch execution
	Workers int `json:"workers"` // Default: 1 (sequential)

	// ConfinePaths rejects paths that resolve outside the project root.
	ConfinePaths bool `json:"confine_paths"` // Default: false
	// RespectGitignore filters in-process walks (tree fallback, glob, repo map) through .gitignore.
	RespectGitignore bool `json:"respect_gitignore"` // Default: false
}

type ProtocolConfig struct {
	APIBase   string `json:"api_base"`
	AuthBase  string `json:"auth_base"`
	App       string `json:"app"`
	AppVer    string `json:"app_version"`
	LSVer     string `json:"ls_version"`
	Model     string `json:"model"`
	Locale    string `json:"locale"`
	UserAgent string `json:"user_agent"`

	UnaryTimeout      int `json:"unary_timeout"`        // Default: 30 (seconds)
	StreamTimeout     int `json:"stream_timeout"`       // Default: 120 (seconds)
	ConnectTimeoutMs  int `json:"connect_timeout_ms"`   // Default: 5999 (Connect-Timeout-Ms header)
	MinScanTextLen    int `json:"min_scan_text_len"`    // Default: 5
	MinFragmentLen    int `json:"min_fragment_len"`     // Default: 10
	MaxErrorBodyBytes int `json:"max_error_body_bytes"` // Default: 2048
}

type LoggingConfig struct {
	Level string `json:"level"` // Default: "warn"
	Debug bool   `json:"debug"` // Default: false
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxTurns:    3,
			MaxCommands: 8,
		},
		Sandbox: SandboxConfig{
			VirtualRoot:          "/codebase",
			MaxResultLines:       50,
			MaxLineChars:         400,
			SearchMaxCount:       50,
			GlobMaxResults:       100,
			TreeMaxLines:         300,
			TreeDefaultDepth:     3,
			SearchTimeout:        30,
			TreeTimeout:          15,
			ListTimeout:          10,
			MaxCommandOutputSize: 10 * 1024 * 1024,
			GracefulShutdownMs:   2000,
			Workers:              1,
		},
		Protocol: ProtocolConfig{
			APIBase:           "https://server.self-serve.windsurf.com/exa.api_server_pb.ApiServerService",
			AuthBase:          "https://server.self-serve.windsurf.com/exa.auth_pb.AuthService",
			App:               "windsurf",
			AppVer:            "1.48.2",
			LSVer:             "1.9544.35",
			Model:             "MODEL_SWE_1_5_SLOW",
			Locale:            "zh-cn",
			UserAgent:         "connect-go/1.18.1 (go1.25.5)",
			UnaryTimeout:      30,
			StreamTimeout:     120,
			ConnectTimeoutMs:  5999,
			MinScanTextLen:    5,
			MinFragmentLen:    10,
			MaxErrorBodyBytes: 2048,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

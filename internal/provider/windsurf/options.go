package windsurf

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Cyclone1070/fastctx/internal/config"
)

// Options configures a Client. It is copied at construction and never
// mutated afterwards.
type Options struct {
	APIBase    string
	AuthBase   string
	App        string
	AppVersion string
	LSVersion  string
	Model      string
	Locale     string
	UserAgent  string

	UnaryTimeout     time.Duration
	StreamTimeout    time.Duration
	ConnectTimeoutMs int

	// MinScanTextLen is the rune count a scanned string must exceed.
	MinScanTextLen int
	// MinFragmentLen is the rune count a scanned fragment must exceed to be
	// kept as model text.
	MinFragmentLen int
	// MaxErrorBodyBytes bounds how much of an error response is kept.
	MaxErrorBodyBytes int

	// Transport is the underlying RoundTripper; nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// OptionsFromConfig maps protocol configuration onto client options.
func OptionsFromConfig(cfg config.ProtocolConfig) Options {
	return Options{
		APIBase:           cfg.APIBase,
		AuthBase:          cfg.AuthBase,
		App:               cfg.App,
		AppVersion:        cfg.AppVer,
		LSVersion:         cfg.LSVer,
		Model:             cfg.Model,
		Locale:            cfg.Locale,
		UserAgent:         cfg.UserAgent,
		UnaryTimeout:      time.Duration(cfg.UnaryTimeout) * time.Second,
		StreamTimeout:     time.Duration(cfg.StreamTimeout) * time.Second,
		ConnectTimeoutMs:  cfg.ConnectTimeoutMs,
		MinScanTextLen:    cfg.MinScanTextLen,
		MinFragmentLen:    cfg.MinFragmentLen,
		MaxErrorBodyBytes: cfg.MaxErrorBodyBytes,
	}
}

// DefaultOptions returns options built from the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig().Protocol)
}

// hosts returns the distinct hostnames of the configured endpoints.
func (o Options) hosts() []string {
	var out []string
	seen := make(map[string]bool)
	for _, base := range []string{o.APIBase, o.AuthBase} {
		u, err := url.Parse(base)
		if err != nil || u.Hostname() == "" || seen[u.Hostname()] {
			continue
		}
		seen[u.Hostname()] = true
		out = append(out, u.Hostname())
	}
	return out
}

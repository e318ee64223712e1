// Package windsurf talks to the Windsurf Connect-RPC API using hand-built
// protobuf bodies.
package windsurf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cyclone1070/fastctx/internal/frame"
	"github.com/Cyclone1070/fastctx/internal/logging"
	"github.com/Cyclone1070/fastctx/internal/provider"
	"github.com/Cyclone1070/fastctx/internal/provider/models"
	"github.com/Cyclone1070/fastctx/internal/wire"
)

// RPC method names.
const (
	methodGetUserJwt     = "GetUserJwt"
	methodCheckRateLimit = "CheckUserMessageRateLimit"
	methodModelStream    = "GetDevstralStream"
)

const (
	contentTypeProto        = "application/proto"
	contentTypeConnectProto = "application/connect+proto"
	sentryPublicKey         = "b813f73488da69eedec534dba1029111"
	tokenPrefix             = "eyJ"
)

var _ provider.Provider = (*Client)(nil)

// Client is safe for concurrent use.
type Client struct {
	opts    Options
	http    *http.Client
	scanner *wire.Scanner
	log     *zap.Logger

	sysInfo string
	cpuInfo string
}

// NewClient builds a Client from opts. A nil logger disables logging.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &Client{
		opts: opts,
		http: &http.Client{
			Transport: NewAllowlistRoundTripper(base, opts.hosts()),
		},
		scanner: wire.NewScanner(opts.MinScanTextLen),
		log:     logger.Named("windsurf"),
		sysInfo: systemInfoJSON(),
		cpuInfo: cpuInfoJSON(),
	}
}

// FetchToken exchanges apiKey for a session JWT.
func (c *Client) FetchToken(ctx context.Context, apiKey string) (string, error) {
	resp, err := c.unary(ctx, c.opts.AuthBase+"/"+methodGetUserJwt, c.buildTokenRequest(apiKey), false)
	if err != nil {
		return "", err
	}
	for _, s := range c.scanner.Strings(resp) {
		if strings.HasPrefix(s, tokenPrefix) && strings.Contains(s, ".") {
			c.log.Debug("session token acquired", zap.String("token", logging.Redact(s)))
			return s, nil
		}
	}
	return "", models.ErrTokenNotFound
}

// CheckRateLimit probes whether a message may be sent. HTTP 429 reports
// unavailable; any other failure reports available along with the error.
func (c *Client) CheckRateLimit(ctx context.Context, creds models.Credentials) (bool, error) {
	_, err := c.unary(ctx, c.opts.APIBase+"/"+methodCheckRateLimit, c.buildRateLimitRequest(creds), true)
	if err == nil {
		return true, nil
	}
	if models.StatusCode(err) == http.StatusTooManyRequests {
		return false, nil
	}
	return true, err
}

// Turn streams one model turn and interprets the reply.
func (c *Client) Turn(ctx context.Context, req *models.TurnRequest) (*models.Reply, error) {
	body, err := c.stream(ctx, c.BuildTurnRequest(req))
	if err != nil {
		return nil, err
	}
	return ParseTurn(body, c.scanner, c.opts.MinFragmentLen)
}

func (c *Client) unary(ctx context.Context, url string, payload []byte, compress bool) ([]byte, error) {
	op := methodFromURL(url)
	ctx, cancel := withTimeout(ctx, c.opts.UnaryTimeout)
	defer cancel()

	body := payload
	if compress {
		var err error
		if body, err = frame.Compress(payload); err != nil {
			return nil, &models.TransportError{Op: op, Cause: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &models.TransportError{Op: op, Cause: err}
	}
	req.Header.Set("Content-Type", contentTypeProto)
	req.Header.Set("Connect-Protocol-Version", "1")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept-Encoding", "gzip")
	if compress {
		req.Header.Set("Content-Encoding", "gzip")
	}

	data, header, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	if header.Get("Content-Encoding") == "gzip" {
		if data, err = frame.Decompress(data); err != nil {
			return nil, &models.TransportError{Op: op, Cause: fmt.Errorf("decompress response: %w", err)}
		}
	}
	return data, nil
}

func (c *Client) stream(ctx context.Context, payload []byte) ([]byte, error) {
	op := methodModelStream
	ctx, cancel := withTimeout(ctx, c.opts.StreamTimeout)
	defer cancel()

	body, err := frame.Encode(payload, true)
	if err != nil {
		return nil, &models.TransportError{Op: op, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.APIBase+"/"+op, bytes.NewReader(body))
	if err != nil {
		return nil, &models.TransportError{Op: op, Cause: err}
	}

	traceID := strings.ReplaceAll(uuid.NewString(), "-", "")
	spanID := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]

	req.Header.Set("Content-Type", contentTypeConnectProto)
	req.Header.Set("Connect-Protocol-Version", "1")
	req.Header.Set("Connect-Accept-Encoding", "gzip")
	req.Header.Set("Connect-Content-Encoding", "gzip")
	req.Header.Set("Connect-Timeout-Ms", strconv.Itoa(c.opts.ConnectTimeoutMs))
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Baggage", fmt.Sprintf(
		"sentry-release=language-server-windsurf@%s,sentry-environment=stable,sentry-sampled=false,sentry-trace_id=%s,sentry-public_key=%s",
		c.opts.LSVersion, traceID, sentryPublicKey))
	req.Header.Set("Sentry-Trace", fmt.Sprintf("%s-%s-0", traceID, spanID))

	data, _, err := c.do(op, req)
	return data, err
}

// do performs req and returns the body of a successful response.
func (c *Client) do(op string, req *http.Request) ([]byte, http.Header, error) {
	c.log.Debug("request", zap.String("op", op), zap.Int64("bytes", req.ContentLength))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &models.TransportError{Op: op, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, int64(c.opts.MaxErrorBodyBytes)))
		c.log.Debug("request failed", zap.String("op", op), zap.Int("status", resp.StatusCode))
		var cause error
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			cause = errors.New(msg)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			cause = models.ErrRateLimited
		}
		return nil, nil, &models.TransportError{Op: op, Status: resp.StatusCode, Cause: cause}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &models.TransportError{Op: op, Cause: fmt.Errorf("read body: %w", err)}
	}
	c.log.Debug("response", zap.String("op", op), zap.Int("bytes", len(data)))
	return data, resp.Header, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func methodFromURL(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

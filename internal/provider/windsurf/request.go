package windsurf

import (
	"github.com/Cyclone1070/fastctx/internal/provider/models"
	"github.com/Cyclone1070/fastctx/internal/wire"
)

// Field numbers of the request metadata message.
const (
	metaApp        = 1
	metaAppVersion = 2
	metaAPIKey     = 3
	metaLocale     = 4
	metaSystemInfo = 5
	metaLSVersion  = 7
	metaCPUInfo    = 8
	metaAppName    = 12
	metaToken      = 21
	metaFlags      = 30
)

// Field numbers of a chat message.
const (
	msgRole     = 2
	msgContent  = 3
	msgToolCall = 6
	msgReplyTo  = 7

	callID   = 1
	callName = 2
	callArgs = 3
)

// Field numbers of the top-level requests.
const (
	reqMetadata = 1
	reqMessages = 2
	reqToolDefs = 3
	reqModel    = 3
)

var metaFlagBytes = []byte{0x00, 0x01}

// buildTokenRequest encodes a GetUserJwt request. It carries a reduced
// metadata block without host details or a token.
func (c *Client) buildTokenRequest(apiKey string) []byte {
	meta := wire.NewWriter().
		WriteString(metaApp, c.opts.App).
		WriteString(metaAppVersion, c.opts.AppVersion).
		WriteString(metaAPIKey, apiKey).
		WriteString(metaLocale, c.opts.Locale).
		WriteString(metaLSVersion, c.opts.LSVersion).
		WriteString(metaAppName, c.opts.App).
		WriteBytes(metaFlags, metaFlagBytes)
	return wire.NewWriter().WriteMessage(reqMetadata, meta).Bytes()
}

func (c *Client) buildMetadata(creds models.Credentials) *wire.Writer {
	return wire.NewWriter().
		WriteString(metaApp, c.opts.App).
		WriteString(metaAppVersion, c.opts.AppVersion).
		WriteString(metaAPIKey, creds.APIKey).
		WriteString(metaLocale, c.opts.Locale).
		WriteString(metaSystemInfo, c.sysInfo).
		WriteString(metaLSVersion, c.opts.LSVersion).
		WriteString(metaCPUInfo, c.cpuInfo).
		WriteString(metaAppName, c.opts.App).
		WriteString(metaToken, creds.Token).
		WriteBytes(metaFlags, metaFlagBytes)
}

func (c *Client) buildRateLimitRequest(creds models.Credentials) []byte {
	return wire.NewWriter().
		WriteMessage(reqMetadata, c.buildMetadata(creds)).
		WriteString(reqModel, c.opts.Model).
		Bytes()
}

// BuildTurnRequest encodes the full conversation for a model turn.
func (c *Client) BuildTurnRequest(req *models.TurnRequest) []byte {
	w := wire.NewWriter().WriteMessage(reqMetadata, c.buildMetadata(req.Credentials))
	for _, m := range req.Messages {
		w.WriteMessage(reqMessages, toWireMessage(m))
	}
	return w.WriteString(reqToolDefs, req.ToolDefinitions).Bytes()
}

// toWireMessage encodes one history entry. The tool call block is only
// written when the call is complete.
func toWireMessage(m models.Message) *wire.Writer {
	w := wire.NewWriter().
		WriteVarint(msgRole, uint64(m.Role)).
		WriteString(msgContent, m.Content)
	if tc := m.ToolCall; tc != nil && tc.ID != "" && tc.Name != "" && tc.ArgsJSON != "" {
		call := wire.NewWriter().
			WriteString(callID, tc.ID).
			WriteString(callName, tc.Name).
			WriteString(callArgs, tc.ArgsJSON)
		w.WriteMessage(msgToolCall, call)
	}
	if m.ReplyTo != "" {
		w.WriteString(msgReplyTo, m.ReplyTo)
	}
	return w
}

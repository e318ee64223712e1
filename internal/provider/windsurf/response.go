package windsurf

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/Cyclone1070/fastctx/internal/frame"
	"github.com/Cyclone1070/fastctx/internal/provider/models"
	"github.com/Cyclone1070/fastctx/internal/toolcall"
	"github.com/Cyclone1070/fastctx/internal/wire"
)

// ParseTurn interprets a streamed model response.
//
// A frame holding a JSON error object ends parsing with a *models.RemoteError.
// A frame whose raw text contains the tool-call delimiter is used verbatim;
// otherwise text fragments longer than minFragment runes are harvested from
// every frame and concatenated.
func ParseTurn(body []byte, scanner *wire.Scanner, minFragment int) (*models.Reply, error) {
	var text strings.Builder
	for _, payload := range frame.Decode(body) {
		if err := remoteError(payload); err != nil {
			return nil, err
		}

		raw := strings.ToValidUTF8(string(payload), "")
		if strings.Contains(raw, toolcall.CallsDelimiter) {
			text.Reset()
			text.WriteString(raw)
			break
		}
		for _, s := range scanner.Strings(payload) {
			if utf8.RuneCountInString(s) > minFragment {
				text.WriteString(s)
			}
		}
	}

	all := text.String()
	call, ok := toolcall.Parse(all)
	if !ok {
		return &models.Reply{Text: all}, nil
	}
	return &models.Reply{
		Text: call.Thinking,
		Call: &models.Call{Name: call.Name, Args: call.Args, ArgsJSON: call.ArgsJSON},
	}, nil
}

// remoteError decodes an end-of-stream error object such as
// {"error":{"code":"resource_exhausted","message":"..."}}.
func remoteError(payload []byte) *models.RemoteError {
	if len(payload) == 0 || payload[0] != '{' || !utf8.Valid(payload) {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil
	}
	raw, ok := obj["error"]
	if !ok {
		return nil
	}

	remote := &models.RemoteError{Code: "unknown"}
	var detail struct {
		Code    *string `json:"code"`
		Message string  `json:"message"`
	}
	if err := json.Unmarshal(raw, &detail); err != nil {
		remote.Message = string(raw)
		return remote
	}
	if detail.Code != nil {
		remote.Code = *detail.Code
	}
	remote.Message = detail.Message
	return remote
}

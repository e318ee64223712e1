package provider

import (
	"context"

	"github.com/Cyclone1070/fastctx/internal/provider/models"
)

// Provider is the remote model backend driving a search.
type Provider interface {
	// FetchToken exchanges an API key for a short-lived session token.
	FetchToken(ctx context.Context, apiKey string) (string, error)

	// CheckRateLimit reports whether the account may send a message now.
	// A non-nil error with available == true means the probe itself failed
	// and the caller may proceed.
	CheckRateLimit(ctx context.Context, creds models.Credentials) (available bool, err error)

	// Turn sends the conversation and returns the model's interpreted reply.
	// Errors returned by the service inside the stream are *models.RemoteError.
	Turn(ctx context.Context, req *models.TurnRequest) (*models.Reply, error)
}

package loop

import (
	"context"

	"github.com/Cyclone1070/fastctx/internal/provider/models"
)

// llmProvider communicates with the search model.
type llmProvider interface {
	FetchToken(ctx context.Context, apiKey string) (string, error)
	CheckRateLimit(ctx context.Context, creds models.Credentials) (bool, error)
	Turn(ctx context.Context, req *models.TurnRequest) (*models.Reply, error)
}

// keySource yields the API key for a search.
type keySource interface {
	APIKey() (string, error)
}

// Workspace is the sandboxed view of one project.
type Workspace interface {
	Root() string
	VirtualRoot() string
	RepoMap(ctx context.Context) string
	RunBatch(ctx context.Context, args map[string]any) string
	Patterns() []string
}

// WorkspaceOpener opens a Workspace rooted at a project directory.
type WorkspaceOpener func(root string) (Workspace, error)

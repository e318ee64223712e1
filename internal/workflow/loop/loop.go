package loop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cyclone1070/fastctx/internal/provider/models"
	"github.com/Cyclone1070/fastctx/internal/result"
	"github.com/Cyclone1070/fastctx/internal/tool"
	"github.com/Cyclone1070/fastctx/internal/workflow"
	"github.com/Cyclone1070/fastctx/internal/workflow/toolmanager"
)

// Budgets used when a Request leaves them unset.
const (
	DefaultMaxTurns    = 3
	DefaultMaxCommands = 8
)

// Request describes one search.
type Request struct {
	Query       string
	ProjectRoot string

	// MaxTurns is the number of tool rounds; one more exchange is allowed
	// for the final answer.
	MaxTurns    int
	MaxCommands int
}

type Loop struct {
	provider llmProvider
	keys     keySource
	open     WorkspaceOpener
	events   chan<- workflow.Event
	log      *zap.Logger
}

func NewLoop(provider llmProvider, keys keySource, open WorkspaceOpener, events chan<- workflow.Event, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		provider: provider,
		keys:     keys,
		open:     open,
		events:   events,
		log:      logger.Named("loop"),
	}
}

func (l *Loop) emit(e workflow.Event) {
	if l.events != nil {
		l.events <- e
	}
}

// Search runs the conversation until the model answers or the turn budget
// is spent. Failures are reported in the Result, never as a panic.
func (l *Loop) Search(ctx context.Context, req Request) (res *result.Result) {
	defer func() {
		l.emit(workflow.DoneEvent{Result: res})
	}()

	if req.MaxTurns <= 0 {
		req.MaxTurns = DefaultMaxTurns
	}
	if req.MaxCommands <= 0 {
		req.MaxCommands = DefaultMaxCommands
	}
	log := l.log.With(zap.String("root", req.ProjectRoot), zap.Int("max_turns", req.MaxTurns))

	apiKey, err := l.keys.APIKey()
	if err != nil {
		log.Warn("no api key", zap.Error(err))
		return result.Failed(result.KindCredentialNotFound, err)
	}

	ws, err := l.open(req.ProjectRoot)
	if err != nil {
		return result.Failed(result.KindInvalidProjectRoot, err)
	}

	l.emit(workflow.StatusEvent{Message: "Fetching session token"})
	token, err := l.provider.FetchToken(ctx, apiKey)
	if err != nil {
		log.Error("token fetch failed", zap.Error(err))
		return result.Failed(result.KindTransportFailure, fmt.Errorf("request failed: %w", err))
	}
	creds := models.Credentials{APIKey: apiKey, Token: token}

	l.emit(workflow.StatusEvent{Message: "Checking rate limit"})
	available, err := l.provider.CheckRateLimit(ctx, creds)
	if err != nil && available {
		log.Warn("rate limit probe failed, continuing", zap.Error(err))
	}
	if !available {
		return result.Failed(result.KindRateLimited, fmt.Errorf("%w, try again later", models.ErrRateLimited))
	}

	defs, err := tool.DefinitionsJSON(req.MaxCommands)
	if err != nil {
		return result.Failed(result.KindTransportFailure, fmt.Errorf("encode tool definitions: %w", err))
	}

	l.emit(workflow.StatusEvent{Message: "Mapping repository"})
	history := []models.Message{
		{Role: models.RoleSystem, Content: SystemPrompt(req.MaxTurns, req.MaxCommands)},
		{Role: models.RoleUser, Content: UserPrompt(req.Query, ws.RepoMap(ctx))},
	}
	tools := toolmanager.NewToolManager(execTool{ws: ws})

	total := req.MaxTurns + 1
	for turn := 0; turn < total; turn++ {
		if err := ctx.Err(); err != nil {
			return result.Failed(result.KindTransportFailure, fmt.Errorf("request failed: %w", err))
		}
		l.emit(workflow.TurnStartEvent{Turn: turn + 1, Total: total})

		reply, err := l.provider.Turn(ctx, &models.TurnRequest{
			Credentials:     creds,
			Messages:        history,
			ToolDefinitions: defs,
		})
		if err != nil {
			var remote *models.RemoteError
			if errors.As(err, &remote) {
				log.Warn("remote error", zap.String("code", remote.Code), zap.String("message", remote.Message))
				return result.Failed(result.KindRemoteProtocolError, remote)
			}
			log.Error("turn failed", zap.Int("turn", turn+1), zap.Error(err))
			return result.Failed(result.KindTransportFailure, fmt.Errorf("request failed: %w", err))
		}

		if reply.Call == nil {
			log.Info("model replied without a tool call", zap.Int("turn", turn+1))
			return &result.Result{RawResponse: reply.Text}
		}

		if reply.Call.Name == tool.NameAnswer {
			xml, _ := reply.Call.Args[tool.AnswerArg].(string)
			files := result.ParseAnswer(xml, ws.Root(), ws.VirtualRoot())
			log.Info("answer received", zap.Int("turn", turn+1), zap.Int("files", len(files)))
			return &result.Result{Files: files, Patterns: ws.Patterns()}
		}

		call := models.ToolCall{ID: uuid.NewString(), Name: reply.Call.Name, ArgsJSON: reply.Call.ArgsJSON}
		history = append(history, models.Message{Role: models.RoleAssistant, Content: reply.Text, ToolCall: &call})

		msg, err := tools.Execute(ctx, call, reply.Call.Args, l.events)
		if err != nil {
			return result.Failed(result.KindTransportFailure, fmt.Errorf("request failed: %w", err))
		}
		history = append(history, msg)

		if turn >= req.MaxTurns-1 {
			history = append(history, models.Message{Role: models.RoleUser, Content: ForceAnswer})
			l.emit(workflow.ForcedAnswerEvent{})
		}
	}

	log.Warn("turn budget exhausted")
	res = result.Failed(result.KindTurnBudgetExhausted, result.ErrTurnBudgetExhausted)
	res.Patterns = ws.Patterns()
	return res
}

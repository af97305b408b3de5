package qa

import (
	"context"

	"github.com/google/uuid"

	"github.com/w-h-a/qa/auditlog"
	"github.com/w-h-a/qa/completer"
	"github.com/w-h-a/qa/guardrail"
	"github.com/w-h-a/qa/internal/service/chat"
	"github.com/w-h-a/qa/ratelimit"
	"github.com/w-h-a/qa/retriever"
	toolhandler "github.com/w-h-a/qa/tool_handler"
)

// Result types produced by the engine.
type (
	Result   = chat.Result
	Citation = chat.Citation
	Meta     = chat.Meta
	ToolUse  = chat.ToolUse
	Option   = chat.Option
)

// Engine answers questions by routing each one through admission gates,
// retrieval over indexed documents, and a bounded tool-calling loop around
// the model.
type Engine struct {
	chat *chat.Service
}

// Ask handles one question. A blank requestId gets a generated identifier;
// a blank clientKey falls into the shared rate limit bucket.
func (e *Engine) Ask(ctx context.Context, message string, requestId string, clientKey string) (*Result, error) {
	if len(requestId) == 0 {
		requestId = uuid.NewString()
	}
	if len(clientKey) == 0 {
		clientKey = "default"
	}

	return e.chat.Handle(ctx, message, requestId, clientKey)
}

func New(
	limiter ratelimit.Limiter,
	guard guardrail.Filter,
	retriever retriever.Retriever,
	completer completer.Completer,
	toolHandlers []toolhandler.ToolHandler,
	sink auditlog.Sink,
	opts ...Option,
) *Engine {
	chat := chat.New(
		limiter,
		guard,
		retriever,
		completer,
		toolHandlers,
		sink,
		opts...,
	)

	return &Engine{
		chat: chat,
	}
}

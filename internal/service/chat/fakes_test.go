package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/w-h-a/qa/completer"
	"github.com/w-h-a/qa/retriever"
	toolhandler "github.com/w-h-a/qa/tool_handler"
)

type stubLimiter struct {
	allow bool
}

func (l *stubLimiter) Allow(key string) bool { return l.allow }

type stubRetriever struct {
	chunks []retriever.Chunk
	err    error
}

func (r *stubRetriever) Retrieve(ctx context.Context, query string, k int) ([]retriever.Chunk, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.chunks) > k {
		return r.chunks[:k], nil
	}
	return r.chunks, nil
}

// scriptedCompleter replays canned responses in order and records every
// request it receives.
type scriptedCompleter struct {
	responses []*completer.Response
	requests  []completer.Request
	err       error
	mtx       sync.Mutex
}

func (c *scriptedCompleter) Complete(ctx context.Context, req completer.Request) (*completer.Response, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.requests = append(c.requests, req)

	if c.err != nil {
		return nil, c.err
	}

	if len(c.responses) == 0 {
		return nil, errors.New("scripted completer exhausted")
	}

	idx := len(c.requests) - 1
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}

	return c.responses[idx], nil
}

func (c *scriptedCompleter) callCount() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.requests)
}

func textResponse(content string) *completer.Response {
	return &completer.Response{
		Content: content,
		Model:   "gpt-4o-mini",
		Usage:   &completer.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

func toolCallResponse(calls ...completer.ToolCall) *completer.Response {
	return &completer.Response{
		ToolCalls: calls,
		Model:     "gpt-4o-mini",
		Usage:     &completer.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

// failingToolHandler reports a spec but always fails to execute.
type failingToolHandler struct {
	name string
	err  error
}

func (th *failingToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{
		Name:        th.name,
		Description: "always fails",
		InputSchema: toolhandler.IntegerArgsSchema("a", "b"),
	}
}

func (th *failingToolHandler) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	return toolhandler.ToolResponse{}, th.err
}

// chattyToolHandler returns a fixed, possibly non-numeric payload and
// records the arguments it was invoked with.
type chattyToolHandler struct {
	name    string
	output  string
	schema  map[string]any
	numeric bool
	got     map[string]any
}

func (th *chattyToolHandler) Spec() toolhandler.ToolSpec {
	schema := th.schema
	if schema == nil {
		schema = toolhandler.IntegerArgsSchema("a", "b")
	}

	spec := toolhandler.ToolSpec{
		Name:        th.name,
		Description: "returns a fixed payload",
		InputSchema: schema,
	}
	if th.numeric {
		spec.Output = toolhandler.OutputNumeric
	}

	return spec
}

func (th *chattyToolHandler) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	th.got = req.Arguments
	return toolhandler.ToolResponse{Content: th.output}, nil
}

package toolhandler

import "context"

// ToolHandler executes one named deterministic tool. Each invocation is
// single-shot; retries are the caller's concern.
type ToolHandler interface {
	Spec() ToolSpec
	Invoke(ctx context.Context, req ToolRequest) (ToolResponse, error)
}

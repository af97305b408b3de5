package utcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/universal-tool-calling-protocol/go-utcp"

	toolhandler "github.com/w-h-a/qa/tool_handler"
	getsafe "github.com/w-h-a/qa/util/get_safe"
)

// utcpToolHandler invokes a tool on a remote UTCP server. Remote failures
// propagate to the caller; there is no local fallback, so every invocation
// passes through the server's own policy and audit trail.
type utcpToolHandler struct {
	options  toolhandler.Options
	client   utcp.UtcpClientInterface
	toolName string
	spec     toolhandler.ToolSpec
}

func (th *utcpToolHandler) Spec() toolhandler.ToolSpec {
	return th.spec
}

func (th *utcpToolHandler) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	raw, err := th.client.CallTool(ctx, th.toolName, req.Arguments)
	if err != nil {
		return toolhandler.ToolResponse{}, fmt.Errorf("remote tool %s failed: %w", th.toolName, err)
	}

	var content string
	switch v := raw.(type) {
	case string:
		content = v
	case map[string]any:
		if s := getsafe.String(v, "result"); len(s) > 0 {
			content = s
		} else if b, err := json.Marshal(v); err == nil {
			content = string(b)
		} else {
			content = fmt.Sprintf("%v", v)
		}
	default:
		if b, err := json.Marshal(v); err == nil {
			content = string(b)
		} else {
			content = fmt.Sprintf("%v", v)
		}
	}

	return toolhandler.ToolResponse{
		Content: content,
		Metadata: map[string]string{
			"source": "utcp",
			"tool":   th.toolName,
		},
	}, nil
}

func NewToolHandler(opts ...toolhandler.Option) toolhandler.ToolHandler {
	options := toolhandler.NewOptions(opts...)

	th := &utcpToolHandler{
		options: options,
	}

	if client, ok := UtcpClientFrom(options.Context); ok {
		th.client = client
	}

	if name, ok := ToolNameFrom(options.Context); ok {
		th.toolName = name
	}

	if spec, ok := ToolSpecFrom(options.Context); ok {
		th.spec = spec
	}

	if th.client == nil {
		panic("utcp client is required")
	}

	return th
}

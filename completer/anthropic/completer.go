package anthropic

import (
	"context"
	"encoding/json"
	"net/http"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/w-h-a/qa/completer"
	toolhandler "github.com/w-h-a/qa/tool_handler"
)

const defaultMaxTokens = 1024

type anthropicCompleter struct {
	options completer.Options
	client  *anthropic.Client
}

func (c *anthropicCompleter) Complete(ctx context.Context, req completer.Request) (*completer.Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.options.Model),
		MaxTokens: defaultMaxTokens,
		Tools:     toMessageTools(req.Tools),
	}

	for _, m := range req.Messages {
		switch m.Role {
		case completer.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case completer.RoleUser:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case completer.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if len(m.Content) > 0 {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.Id, json.RawMessage(tc.Arguments), tc.Name))
			}
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(blocks...))
		case completer.RoleTool:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(m.ToolCallId, m.Content, false),
			))
		}
	}

	rsp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	result := &completer.Response{
		Model: string(rsp.Model),
		Usage: &completer.Usage{
			PromptTokens:     int(rsp.Usage.InputTokens),
			CompletionTokens: int(rsp.Usage.OutputTokens),
			TotalTokens:      int(rsp.Usage.InputTokens + rsp.Usage.OutputTokens),
		},
	}

	for _, block := range rsp.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			result.Content += variant.Text
		case anthropic.ToolUseBlock:
			result.ToolCalls = append(result.ToolCalls, completer.ToolCall{
				Id:        variant.ID,
				Name:      variant.Name,
				Arguments: variant.JSON.Input.Raw(),
			})
		}
	}

	return result, nil
}

func toMessageTools(specs []toolhandler.ToolSpec) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, 0, len(specs))

	for _, spec := range specs {
		var properties any
		if spec.InputSchema != nil {
			properties = spec.InputSchema["properties"]
		}

		tools = append(tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        spec.Name,
				Description: anthropic.String(spec.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: properties,
				},
			},
		})
	}

	return tools
}

func NewCompleter(opts ...completer.Option) completer.Completer {
	options := completer.NewOptions(opts...)

	client := anthropic.NewClient(
		anthropicopt.WithAPIKey(options.ApiKey),
		anthropicopt.WithHTTPClient(&http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
	)

	return &anthropicCompleter{
		options: options,
		client:  &client,
	}
}

package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/w-h-a/qa/completer"
	toolhandler "github.com/w-h-a/qa/tool_handler"
)

type openAICompleter struct {
	options completer.Options
	client  *openai.Client
}

func (c *openAICompleter) Complete(ctx context.Context, req completer.Request) (*completer.Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:    c.options.Model,
		Messages: toChatMessages(req.Messages),
		Tools:    toChatTools(req.Tools),
	}

	if len(req.ToolChoice) > 0 {
		chatReq.ToolChoice = req.ToolChoice
	}

	rsp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, err
	}

	if len(rsp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	msg := rsp.Choices[0].Message

	result := &completer.Response{
		Content: msg.Content,
		Model:   rsp.Model,
		Usage: &completer.Usage{
			PromptTokens:     rsp.Usage.PromptTokens,
			CompletionTokens: rsp.Usage.CompletionTokens,
			TotalTokens:      rsp.Usage.TotalTokens,
		},
	}

	for _, tc := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, completer.ToolCall{
			Id:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return result, nil
}

func toChatMessages(messages []completer.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))

	for _, m := range messages {
		msg := openai.ChatCompletionMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallId,
		}

		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   tc.Id,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}

		out = append(out, msg)
	}

	return out
}

func toChatTools(specs []toolhandler.ToolSpec) []openai.Tool {
	tools := make([]openai.Tool, 0, len(specs))

	for _, spec := range specs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.InputSchema,
			},
		})
	}

	return tools
}

func NewCompleter(opts ...completer.Option) completer.Completer {
	options := completer.NewOptions(opts...)

	config := openai.DefaultConfig(options.ApiKey)
	config.HTTPClient = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &openAICompleter{
		options: options,
		client:  openai.NewClientWithConfig(config),
	}
}

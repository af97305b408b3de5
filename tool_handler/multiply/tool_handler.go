package multiply

import (
	"context"
	"strconv"

	toolhandler "github.com/w-h-a/qa/tool_handler"
)

type multiplyToolHandler struct {
	options toolhandler.Options
}

func (th *multiplyToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{
		Name:        "multiply",
		Description: "Multiply two integers.",
		InputSchema: toolhandler.IntegerArgsSchema("a", "b"),
		Output:      toolhandler.OutputNumeric,
	}
}

func (th *multiplyToolHandler) Invoke(_ context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	a, err := toolhandler.IntArg(req.Arguments, "a")
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	b, err := toolhandler.IntArg(req.Arguments, "b")
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	return toolhandler.ToolResponse{
		Content:  strconv.FormatInt(a*b, 10),
		Metadata: map[string]string{"source": "local"},
	}, nil
}

func NewToolHandler(opts ...toolhandler.Option) toolhandler.ToolHandler {
	return &multiplyToolHandler{
		options: toolhandler.NewOptions(opts...),
	}
}

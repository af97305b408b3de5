package completer

import toolhandler "github.com/w-h-a/qa/tool_handler"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallId string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a structured request from the model to invoke one named tool.
// Arguments is the raw JSON object text as the model produced it.
type ToolCall struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type Request struct {
	Messages   []Message
	Tools      []toolhandler.ToolSpec
	ToolChoice string
}

type Response struct {
	Content   string
	ToolCalls []ToolCall
	Model     string
	Usage     *Usage
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

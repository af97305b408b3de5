package toolhandler

// OutputNumeric marks a tool whose result must parse as a number. Tools
// without an output contract may return free-form text.
const OutputNumeric = "numeric"

type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
	Output      string         `json:"output,omitempty"`
}

type ToolRequest struct {
	Arguments map[string]any `json:"arguments"`
}

type ToolResponse struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// IntegerArgsSchema describes a tool taking exactly two required integers.
// The fixed arithmetic catalog shares this shape.
func IntegerArgsSchema(first, second string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			first:  map[string]any{"type": "integer"},
			second: map[string]any{"type": "integer"},
		},
		"required": []string{first, second},
	}
}

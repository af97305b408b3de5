package auditlog

import (
	"context"
	"time"
)

// Sink accepts append-only audit records. Implementations must write each
// record atomically; partial rows are never acceptable.
type Sink interface {
	RecordToolInvocation(ctx context.Context, rec ToolInvocationRecord) error
	RecordChat(ctx context.Context, rec ChatRecord) error
}

// MaxPreviewLength bounds the persisted tool output preview.
const MaxPreviewLength = 200

// ToolInvocationRecord is the persisted projection of one tool call,
// written for successes and failures alike.
type ToolInvocationRecord struct {
	RequestId     string    `json:"request_id"`
	ToolName      string    `json:"tool_name"`
	ArgsHash      string    `json:"args_hash"`
	ArgsJson      string    `json:"args_json"`
	LatencyMs     float64   `json:"tool_latency_ms"`
	OutputPreview string    `json:"tool_output_preview"`
	Success       bool      `json:"success"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ChatRecord struct {
	RequestId string    `json:"request_id"`
	Message   string    `json:"message"`
	Route     string    `json:"route"`
	Model     string    `json:"model"`
	LatencyMs float64   `json:"latency_ms"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// TruncatePreview clips s to MaxPreviewLength.
func TruncatePreview(s string) string {
	if len(s) <= MaxPreviewLength {
		return s
	}
	return s[:MaxPreviewLength]
}

package chat

// ToolUse summarizes one completed tool invocation for the caller.
type ToolUse struct {
	Name      string         `json:"name"`
	Args      map[string]any `json:"args"`
	LatencyMs float64        `json:"tool_latency_ms"`
}

// Meta is the structured metadata accumulated across the nodes a request
// visits. Extra carries provider-specific telemetry that has no named field.
type Meta struct {
	Route            Route          `json:"route"`
	Blocked          bool           `json:"blocked,omitempty"`
	Reason           string         `json:"reason,omitempty"`
	TopScore         float64        `json:"top_score,omitempty"`
	RetrievalCount   int            `json:"retrieval_count"`
	MinScore         float64        `json:"min_score,omitempty"`
	NoContextFound   bool           `json:"no_context_found,omitempty"`
	Model            string         `json:"model,omitempty"`
	LatencyMs        float64        `json:"latency_ms,omitempty"`
	ToolsUsed        []ToolUse      `json:"tools_used,omitempty"`
	PromptTokens     int            `json:"prompt_tokens,omitempty"`
	CompletionTokens int            `json:"completion_tokens,omitempty"`
	TotalTokens      int            `json:"total_tokens,omitempty"`
	Extra            map[string]any `json:"extra,omitempty"`
}

// merge folds metadata produced by a later node into m. Fields owned by the
// router and retrieval nodes (route, reason, top_score, retrieval_count,
// min_score) are set once and survive all later merges.
func (m *Meta) merge(other Meta) {
	if len(m.Route) == 0 {
		m.Route = other.Route
	}
	if len(m.Reason) == 0 {
		m.Reason = other.Reason
	}
	if m.TopScore == 0 {
		m.TopScore = other.TopScore
	}
	if m.RetrievalCount == 0 {
		m.RetrievalCount = other.RetrievalCount
	}
	if m.MinScore == 0 {
		m.MinScore = other.MinScore
	}

	if other.Blocked {
		m.Blocked = true
	}
	if other.NoContextFound {
		m.NoContextFound = true
	}
	if len(other.Model) > 0 {
		m.Model = other.Model
	}
	if other.LatencyMs > 0 {
		m.LatencyMs = other.LatencyMs
	}
	if len(other.ToolsUsed) > 0 {
		m.ToolsUsed = append(m.ToolsUsed, other.ToolsUsed...)
	}
	if other.TotalTokens > 0 {
		m.PromptTokens = other.PromptTokens
		m.CompletionTokens = other.CompletionTokens
		m.TotalTokens = other.TotalTokens
	}

	for k, v := range other.Extra {
		if m.Extra == nil {
			m.Extra = map[string]any{}
		}
		m.Extra[k] = v
	}
}

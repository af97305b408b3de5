package chat

// Route is the chosen strategy for answering one request.
type Route string

const (
	RouteBlocked Route = "blocked"
	RouteRag     Route = "rag"
	RouteTool    Route = "tool"
	RouteHybrid  Route = "hybrid"
	RouteLLM     Route = "llm"
)

const (
	ReasonRateLimited = "rate_limited"
	ReasonUnsafeInput = "unsafe_input"
	ReasonSemantic    = "semantic"
	ReasonHeuristic   = "heuristic"
)

// Decision is the router's verdict for one request. It is made exactly once
// and never revisited.
type Decision struct {
	Route    Route
	Reason   string
	TopScore float64
	ProbeErr string
}

// Citation points the caller at a retrieved chunk that grounded the answer.
type Citation struct {
	Rank    int     `json:"rank"`
	Source  string  `json:"source"`
	ChunkId string  `json:"chunk_id"`
	Score   float64 `json:"score"`
}

// Result is the immutable outcome of one handled request.
type Result struct {
	Answer    string     `json:"answer"`
	RequestId string     `json:"request_id"`
	Citations []Citation `json:"citations"`
	Meta      Meta       `json:"meta"`
}

package qa

import "github.com/w-h-a/qa/internal/service/chat"

// Tuning options forwarded to the engine's orchestration core.
var (
	WithTopK              = chat.WithTopK
	WithMinScore          = chat.WithMinScore
	WithSemanticThreshold = chat.WithSemanticThreshold
	WithMaxRounds         = chat.WithMaxRounds
	WithToolBudget        = chat.WithToolBudget
	WithSystemPrompt      = chat.WithSystemPrompt
)

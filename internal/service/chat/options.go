package chat

import "context"

type Option func(*Options)

type Options struct {
	TopK              int
	MinScore          float64
	SemanticThreshold float64
	MaxRounds         int
	ToolBudget        int
	MaxAbsToolArg     int64
	SystemPrompt      string
	Context           context.Context
}

func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

// WithMinScore sets the single source of truth for the minimum retrieval
// score; the filter and the synthesis short-circuit both read it.
func WithMinScore(score float64) Option {
	return func(o *Options) {
		o.MinScore = score
	}
}

func WithSemanticThreshold(threshold float64) Option {
	return func(o *Options) {
		o.SemanticThreshold = threshold
	}
}

func WithMaxRounds(rounds int) Option {
	return func(o *Options) {
		o.MaxRounds = rounds
	}
}

func WithToolBudget(budget int) Option {
	return func(o *Options) {
		o.ToolBudget = budget
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		TopK:              6,
		MinScore:          0.25,
		SemanticThreshold: 0.25,
		MaxRounds:         5,
		ToolBudget:        5,
		MaxAbsToolArg:     1_000_000,
		SystemPrompt:      "You are a helpful assistant. Use tools for exact math.",
		Context:           context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

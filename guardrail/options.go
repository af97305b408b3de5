package guardrail

import "context"

type Option func(*Options)

type Options struct {
	BannedPhrases []string
	MaxAbsInt     int64
	Context       context.Context
}

func WithBannedPhrases(phrases ...string) Option {
	return func(o *Options) {
		o.BannedPhrases = phrases
	}
}

func WithMaxAbsInt(bound int64) Option {
	return func(o *Options) {
		o.MaxAbsInt = bound
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		BannedPhrases: DefaultBannedPhrases,
		MaxAbsInt:     DefaultMaxAbsInt,
		Context:       context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

package ratelimit

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	MaxRequests int
	Window      time.Duration
	Context     context.Context
}

func WithMaxRequests(max int) Option {
	return func(o *Options) {
		o.MaxRequests = max
	}
}

func WithWindow(window time.Duration) Option {
	return func(o *Options) {
		o.Window = window
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxRequests: 2,
		Window:      60 * time.Second,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

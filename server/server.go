package server

import "context"

// Server is a long-running transport front. Run blocks until the server
// stops or fails; Stop drains in-flight requests within the context's
// deadline.
type Server interface {
	Run() error
	Stop(ctx context.Context) error
}

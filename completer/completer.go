package completer

import "context"

// Completer is a chat-completion collaborator that may answer directly or
// request calls against the supplied tool catalog.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

package chat

import "errors"

var (
	// ErrToolNotAllowed means the model asked for a tool outside the catalog.
	ErrToolNotAllowed = errors.New("tool is not in the allow-list")

	// ErrToolBudgetExceeded means the per-request tool call budget ran out.
	ErrToolBudgetExceeded = errors.New("tool call budget exceeded")

	// ErrToolArgumentInvalid means the model's arguments failed schema validation.
	ErrToolArgumentInvalid = errors.New("tool arguments failed validation")

	// ErrToolExecutionFailed means the executor raised or returned a malformed result.
	// The invocation is logged before this is surfaced.
	ErrToolExecutionFailed = errors.New("tool execution failed")
)

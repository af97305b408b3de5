package guardrail

// Filter decides whether a piece of user input is unsafe to process.
// Implementations must be pure and must never fail.
type Filter interface {
	IsUnsafe(text string) bool
}

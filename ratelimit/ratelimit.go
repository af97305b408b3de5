package ratelimit

// Limiter is a per-key admission gate. Allow reports whether the caller
// identified by key may proceed and, if so, records the admission.
type Limiter interface {
	Allow(key string) bool
}

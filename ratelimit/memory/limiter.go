package memory

import (
	"sync"
	"time"

	"github.com/w-h-a/qa/ratelimit"
)

// memoryLimiter keeps a sliding window of admission timestamps per key.
// Nothing is persisted; state resets on restart.
type memoryLimiter struct {
	options ratelimit.Options
	events  map[string][]time.Time
	now     func() time.Time
	mtx     sync.Mutex
}

func (l *memoryLimiter) Allow(key string) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	now := l.now()
	window := l.events[key]

	// Evict timestamps strictly older than the window.
	cutoff := now.Add(-l.options.Window)
	evicted := 0
	for _, ts := range window {
		if !ts.Before(cutoff) {
			break
		}
		evicted++
	}
	window = window[evicted:]

	if len(window) >= l.options.MaxRequests {
		l.events[key] = window
		return false
	}

	l.events[key] = append(window, now)

	return true
}

func NewLimiter(opts ...ratelimit.Option) ratelimit.Limiter {
	return &memoryLimiter{
		options: ratelimit.NewOptions(opts...),
		events:  map[string][]time.Time{},
		now:     time.Now,
	}
}

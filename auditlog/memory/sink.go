package memory

import (
	"context"
	"sync"
	"time"

	"github.com/w-h-a/qa/auditlog"
)

// Sink buffers records in memory. Intended for tests and demos; the
// inspection helpers are why it returns the concrete type.
type Sink struct {
	options auditlog.Options
	tools   []auditlog.ToolInvocationRecord
	chats   []auditlog.ChatRecord
	mtx     sync.RWMutex
}

func (s *Sink) RecordToolInvocation(ctx context.Context, rec auditlog.ToolInvocationRecord) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.OutputPreview = auditlog.TruncatePreview(rec.OutputPreview)

	s.tools = append(s.tools, rec)

	return nil
}

func (s *Sink) RecordChat(ctx context.Context, rec auditlog.ChatRecord) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.chats = append(s.chats, rec)

	return nil
}

// ToolInvocations returns a copy of the recorded tool invocations.
func (s *Sink) ToolInvocations() []auditlog.ToolInvocationRecord {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	cpy := make([]auditlog.ToolInvocationRecord, len(s.tools))
	copy(cpy, s.tools)

	return cpy
}

// Chats returns a copy of the recorded chat results.
func (s *Sink) Chats() []auditlog.ChatRecord {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	cpy := make([]auditlog.ChatRecord, len(s.chats))
	copy(cpy, s.chats)

	return cpy
}

func NewSink(opts ...auditlog.Option) *Sink {
	return &Sink{
		options: auditlog.NewOptions(opts...),
	}
}

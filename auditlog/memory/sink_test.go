package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w-h-a/qa/auditlog"
)

func TestRecordToolInvocation(t *testing.T) {
	s := NewSink()
	ctx := context.Background()

	require.NoError(t, s.RecordToolInvocation(ctx, auditlog.ToolInvocationRecord{
		RequestId: "req-1",
		ToolName:  "multiply",
		ArgsHash:  "abc",
		Success:   true,
	}))
	require.NoError(t, s.RecordToolInvocation(ctx, auditlog.ToolInvocationRecord{
		RequestId: "req-1",
		ToolName:  "add",
		Success:   false,
		Error:     "boom",
	}))

	recs := s.ToolInvocations()
	require.Len(t, recs, 2)
	assert.Equal(t, "multiply", recs[0].ToolName)
	assert.False(t, recs[1].Success)
	assert.Equal(t, "boom", recs[1].Error)
	assert.False(t, recs[0].CreatedAt.IsZero())
}

func TestPreviewTruncation(t *testing.T) {
	s := NewSink()

	long := strings.Repeat("x", auditlog.MaxPreviewLength+50)
	require.NoError(t, s.RecordToolInvocation(context.Background(), auditlog.ToolInvocationRecord{
		OutputPreview: long,
	}))

	recs := s.ToolInvocations()
	require.Len(t, recs, 1)
	assert.Len(t, recs[0].OutputPreview, auditlog.MaxPreviewLength)
}

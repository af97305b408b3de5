package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIgnoresFieldOrder(t *testing.T) {
	first := map[string]any{}
	first["a"] = int64(1)
	first["b"] = int64(2)

	second := map[string]any{}
	second["b"] = int64(2)
	second["a"] = int64(1)

	assert.Equal(t, hashArgs(first), hashArgs(second))
}

func TestHashDistinguishesValues(t *testing.T) {
	assert.NotEqual(
		t,
		hashArgs(map[string]any{"a": int64(1), "b": int64(2)}),
		hashArgs(map[string]any{"a": int64(2), "b": int64(1)}),
	)
}

func TestHashIsStable(t *testing.T) {
	args := map[string]any{"a": int64(12), "b": int64(7)}
	assert.Equal(t, hashArgs(args), hashArgs(args))
	assert.Len(t, hashArgs(args), 64)
}

package chat

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashArgs digests a validated argument mapping. encoding/json emits map
// keys in sorted order, so mappings that differ only in field order produce
// the same digest.
func hashArgs(args map[string]any) string {
	canonical, err := json.Marshal(args)
	if err != nil {
		// Validated arguments are plain integers; this cannot happen.
		return ""
	}

	sum := sha256.Sum256(canonical)

	return hex.EncodeToString(sum[:])
}

package toolhandler

import (
	"encoding/json"
	"fmt"
	"math"
)

// IntArg extracts a required integer argument from a decoded JSON object.
// JSON numbers decode as float64; fractional values are rejected.
func IntArg(args map[string]any, key string) (int64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}

	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("argument %q must be an integer", key)
		}
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer", key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer", key)
	}
}

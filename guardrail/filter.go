package guardrail

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxAbsInt caps integer literals accepted in user input. Anything
// larger would be rejected by tool argument validation downstream anyway.
const DefaultMaxAbsInt int64 = 1_000_000

var DefaultBannedPhrases = []string{
	"ignore previous instructions",
	"system prompt",
	"developer message",
	"reveal hidden",
	"exfiltrate",
	"steal",
	"delete",
	"drop table",
}

var (
	bypassPattern  = regexp.MustCompile(`\b(ignore|bypass|override)\b.*\b(instructions|rules|policy)\b`)
	integerPattern = regexp.MustCompile(`-?\d+`)
)

type patternFilter struct {
	options Options
}

func (f *patternFilter) IsUnsafe(text string) bool {
	t := strings.ToLower(text)

	for _, phrase := range f.options.BannedPhrases {
		if strings.Contains(t, phrase) {
			return true
		}
	}

	if bypassPattern.MatchString(t) {
		return true
	}

	for _, literal := range integerPattern.FindAllString(t, -1) {
		v, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			// Does not fit in 64 bits, so it is certainly out of bounds.
			return true
		}
		if v > f.options.MaxAbsInt || v < -f.options.MaxAbsInt {
			return true
		}
	}

	return false
}

func NewFilter(opts ...Option) Filter {
	return &patternFilter{
		options: NewOptions(opts...),
	}
}

package analytics

import (
	"strings"

	"guild-tracker/internal/domain"
)

// Clamp bounds v to [0, domain.MaxValue].
func Clamp(v int64) int64 {
	return min(max(v, 0), domain.MaxValue)
}

// ParseNumericInput reads a user-typed number leniently. Everything except
// digits, '.' and '-' is dropped, the leading integer is taken, its sign is
// discarded and the result is clamped. Unparseable input yields 0.
func ParseNumericInput(raw string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)

	cleaned = strings.TrimPrefix(cleaned, "-")

	var n int64
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int64(r-'0')
		if n > domain.MaxValue {
			return domain.MaxValue
		}
	}
	return n
}

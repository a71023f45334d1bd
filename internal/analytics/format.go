package analytics

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatLargeNumber abbreviates n with one decimal: 1.5M, 12.0K.
func FormatLargeNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

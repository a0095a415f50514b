package console

import (
	"fmt"
	"time"
)

// FormatFileSize formats a byte count in a human-readable way (e.g. "512 B",
// "3.4 KB", "1.2 MB").
func FormatFileSize(size int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)

	switch {
	case size < kb:
		return fmt.Sprintf("%d B", size)
	case size < mb:
		return fmt.Sprintf("%.1f KB", float64(size)/float64(kb))
	case size < gb:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(mb))
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/float64(gb))
	}
}

// FormatNumber formats large numbers in a human-readable way (e.g. "1.00k",
// "1.2k", "1.12M").
func FormatNumber(n int) string {
	if n == 0 {
		return "0"
	}

	f := float64(n)
	format := func(value float64, suffix string) string {
		switch {
		case value >= 100:
			return fmt.Sprintf("%.0f%s", value, suffix)
		case value >= 10:
			return fmt.Sprintf("%.1f%s", value, suffix)
		default:
			return fmt.Sprintf("%.2f%s", value, suffix)
		}
	}

	switch {
	case f < 1000:
		return fmt.Sprintf("%d", n)
	case f < 1000000:
		return format(f/1000, "k")
	case f < 1000000000:
		return format(f/1000000, "M")
	default:
		return format(f/1000000000, "B")
	}
}

// FormatDuration formats a duration for report output. Sub-millisecond
// durations render in microseconds, sub-second in milliseconds, and longer
// durations in seconds with two decimals.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

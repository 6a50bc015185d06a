package ui

import (
	"fmt"
	"time"

	"github.com/taskshare/taskshare/internal/age"
)

// DayLayout is the human date format, as in "Mar 5, 2024".
const DayLayout = "Jan 2, 2006"

// FormatDay formats t as a calendar day, or "-" when t is unset.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DayLayout)
}

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	d, ok := age.AgeData(then, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(d) + " ago"
}

// FormatSpan formats the time between start and end, running to now when
// end is unset.
func FormatSpan(start time.Time, end time.Time, now time.Time) string {
	d, ok := age.DurationData(start, end, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(d)
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	seconds := int64(duration / time.Second)
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 60*60:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 24*60*60:
		return fmt.Sprintf("%dh", seconds/(60*60))
	default:
		return fmt.Sprintf("%dd", seconds/(24*60*60))
	}
}

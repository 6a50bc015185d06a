// Package age computes the elapsed times shown next to tasks.
package age

import "time"

// AgeData returns how long ago createdAt was, and false when createdAt is
// unset. Timestamps in the future count as zero age.
func AgeData(createdAt time.Time, now time.Time) (time.Duration, bool) {
	if createdAt.IsZero() {
		return 0, false
	}
	return clamp(now.Sub(createdAt)), true
}

// DurationData returns the span from start to end. An unset end means the
// span is still running and ends at now.
func DurationData(start time.Time, end time.Time, now time.Time) (time.Duration, bool) {
	if start.IsZero() {
		return 0, false
	}
	if end.IsZero() {
		end = now
	}
	return clamp(end.Sub(start)), true
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

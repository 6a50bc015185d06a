package todo

import (
	"time"

	internalage "github.com/taskshare/taskshare/internal/age"
)

// AgeData computes the display age and whether timing data exists.
func AgeData(item Task, now time.Time) (time.Duration, bool) {
	return internalage.AgeData(item.CreatedAt, now)
}

// CompletionData computes how long a completed task took from creation to
// completion. It reports false for tasks that are not completed.
func CompletionData(item Task, now time.Time) (time.Duration, bool) {
	if !item.Completed || item.CompletedAt == nil {
		return 0, false
	}
	return internalage.DurationData(item.CreatedAt, *item.CompletedAt, now)
}

package todo

import (
	"fmt"
	"sort"
	"strings"

	internalstrings "github.com/taskshare/taskshare/internal/strings"
	"github.com/taskshare/taskshare/internal/validation"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// ValidStatusFilters returns all valid status filters.
func ValidStatusFilters() []StatusFilter {
	return []StatusFilter{StatusAll, StatusActive, StatusCompleted}
}

// PriorityAll disables priority filtering.
const PriorityAll Priority = "all"

// SortKey orders query results.
type SortKey string

const (
	// SortNone keeps collection order (most recently created first).
	SortNone        SortKey = ""
	SortDateCreated SortKey = "dateCreated"
	SortDueDate     SortKey = "dueDate"
	SortPriority    SortKey = "priority"
)

// ValidSortKeys returns all sort keys that reorder results.
func ValidSortKeys() []SortKey {
	return []SortKey{SortDateCreated, SortDueDate, SortPriority}
}

// QueryOptions configures Query. The zero value returns every task in
// collection order.
type QueryOptions struct {
	// Status defaults to StatusAll.
	Status StatusFilter

	// Priority filters to an exact priority. Empty or PriorityAll disables it.
	Priority Priority

	// SearchText matches case-insensitively against title or description.
	SearchText string

	// DueBetween keeps only tasks whose due date lies in the range.
	// Tasks without a due date are excluded when it is set.
	DueBetween *DateRange

	SortBy SortKey
}

// Query filters and sorts tasks. The filters are conjunctive and are applied
// before sorting; all sorts are stable. The input slice and its tasks are
// not modified.
func Query(tasks []Task, opts QueryOptions) []Task {
	search := strings.ToLower(opts.SearchText)

	out := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if !matchesStatus(task, opts.Status) {
			continue
		}
		if opts.Priority != "" && opts.Priority != PriorityAll && task.Priority.Normalized() != opts.Priority.Normalized() {
			continue
		}
		if opts.DueBetween != nil && (task.DueDate == nil || !opts.DueBetween.Contains(*task.DueDate)) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(task.Title), search) &&
			!strings.Contains(strings.ToLower(task.Description), search) {
			continue
		}
		out = append(out, task.Clone())
	}

	switch opts.SortBy {
	case SortDateCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	}

	return out
}

func matchesStatus(task Task, status StatusFilter) bool {
	switch status {
	case StatusActive:
		return !task.Completed
	case StatusCompleted:
		return task.Completed
	default:
		return true
	}
}

// ParseStatusFilter parses a status filter. Empty input means StatusAll.
func ParseStatusFilter(value string) (StatusFilter, error) {
	normalized := StatusFilter(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" {
		return StatusAll, nil
	}
	if !validation.IsOneOf(normalized, ValidStatusFilters()) {
		return "", validation.FormatInvalidValueError(ErrInvalidStatusFilter, StatusFilter(value), ValidStatusFilters())
	}
	return normalized, nil
}

// ParsePriorityFilter parses a priority filter. Empty input means PriorityAll.
func ParsePriorityFilter(value string) (Priority, error) {
	normalized := Priority(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" || normalized == PriorityAll {
		return PriorityAll, nil
	}
	if !normalized.IsValid() {
		return "", fmt.Errorf("%w: %q (valid: all, %s)", ErrInvalidPriority, value, validation.FormatValidValues(ValidPriorities()))
	}
	return normalized, nil
}

// ParseSortKey parses a sort key. Matching ignores case, dashes and
// underscores, so "due-date" selects SortDueDate. Empty input means SortNone.
func ParseSortKey(value string) (SortKey, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	normalized = strings.NewReplacer("-", "", "_", "").Replace(normalized)
	switch normalized {
	case "":
		return SortNone, nil
	case "datecreated", "created":
		return SortDateCreated, nil
	case "duedate", "due":
		return SortDueDate, nil
	case "priority":
		return SortPriority, nil
	}
	return "", validation.FormatInvalidValueError(ErrInvalidSortKey, SortKey(value), ValidSortKeys())
}

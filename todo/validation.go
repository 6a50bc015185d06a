package todo

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taskshare/taskshare/internal/validation"
)

var (
	// ErrNotFound is the base of every lookup failure. Callers that only
	// care whether something exists match on it with errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)

	// ErrShareNotFound is returned when no share record has the given code.
	ErrShareNotFound = fmt.Errorf("share code %w", ErrNotFound)

	// ErrDanglingShare is returned when a share record points at a task
	// that no longer exists.
	ErrDanglingShare = fmt.Errorf("shared task %w", ErrNotFound)

	// ErrAmbiguousTaskIDPrefix is returned when an ID prefix matches multiple tasks.
	ErrAmbiguousTaskIDPrefix = errors.New("ambiguous task ID prefix")

	// ErrPersist is returned when a mutation was applied in memory but
	// could not be written to storage.
	ErrPersist = errors.New("persist failed")

	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidPriority is returned for unknown priority values.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidDate is returned for malformed dates.
	ErrInvalidDate = errors.New("invalid date")

	// ErrCompletedAtMismatch is returned when completedAt disagrees with completed.
	ErrCompletedAtMismatch = errors.New("completedAt must be set if and only if the task is completed")

	// ErrTaskIDExhausted is returned when no unused task ID could be generated.
	ErrTaskIDExhausted = errors.New("could not generate an unused task ID")

	// ErrShareCodeExhausted is returned when no unused share code could be generated.
	ErrShareCodeExhausted = errors.New("could not generate an unused share code")

	// ErrInvalidStatusFilter is returned for unknown status filters.
	ErrInvalidStatusFilter = errors.New("invalid status filter")

	// ErrInvalidSortKey is returned for unknown sort keys.
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, n, MaxTitleLength)
	}
	return nil
}

// ValidatePriority checks if the priority is valid. Empty is valid and
// means PriorityNone.
func ValidatePriority(priority Priority) error {
	if priority.Normalized().IsValid() {
		return nil
	}
	return validation.FormatInvalidValueError(ErrInvalidPriority, priority, ValidPriorities())
}

// ValidateTask checks if a task struct is valid.
func ValidateTask(t *Task) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if err := ValidatePriority(t.Priority); err != nil {
		return err
	}
	if t.Completed != (t.CompletedAt != nil) {
		return ErrCompletedAtMismatch
	}
	return nil
}

// ParsePriority normalizes user input into a Priority. Empty input means
// PriorityNone.
func ParsePriority(value string) (Priority, error) {
	priority := Priority(strings.ToLower(strings.TrimSpace(value))).Normalized()
	if err := ValidatePriority(priority); err != nil {
		return "", err
	}
	return priority, nil
}

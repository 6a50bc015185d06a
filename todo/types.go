// Package todo implements the TaskShare task store.
//
// A Store owns two collections persisted through a kv.Storage: the ordered
// task list (most recent first) and the share records that map share codes
// to tasks. Query and ComputeStats are pure projections over a snapshot of
// the collections; callers invoke them explicitly whenever they need a view.
//
// The public API mirrors the CLI commands:
//   - Create, Update, ToggleComplete, Delete for the task lifecycle
//   - Share, Resolve, Revoke, ListShared for share links
//   - Query, ComputeStats for derived views
package todo

import (
	"time"

	"github.com/taskshare/taskshare/internal/validation"
)

// Priority is the importance of a task.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities returns all valid priority values, most severe first.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow, PriorityNone}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	return validation.IsOneOf(p, ValidPriorities())
}

// Rank returns the sort rank of a priority: high 1, medium 2, low 3,
// none (and anything unknown) 4.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Normalized maps the empty priority to PriorityNone.
func (p Priority) Normalized() Priority {
	if p == "" {
		return PriorityNone
	}
	return p
}

// MaxTitleLength is the maximum allowed length for a task title.
const MaxTitleLength = 500

// Task is a user-created unit of work.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	DueDate     *Date      `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"created"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy of t.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		out.CompletedAt = &completedAt
	}
	if t.UpdatedAt != nil {
		updatedAt := *t.UpdatedAt
		out.UpdatedAt = &updatedAt
	}
	return out
}

// Draft supplies the user-editable fields of a new task.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *Date
}

// ShareRecord associates a share code with a task.
type ShareRecord struct {
	ShareCode string `json:"shareCode"`
	TodoID    string `json:"todoId"`

	// OriginalTitle is the task title at the time it was shared.
	OriginalTitle string    `json:"originalTitle"`
	SharedAt      time.Time `json:"sharedAt"`
}

// SharedTask is a task annotated with its share metadata.
type SharedTask struct {
	Task
	IsShared  bool      `json:"isShared"`
	SharedAt  time.Time `json:"sharedAt"`
	ShareCode string    `json:"shareCode"`
}

// Stats summarizes the task collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
	Shared    int `json:"shared"`
}

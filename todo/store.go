package todo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/taskshare/taskshare/internal/ids"
	"github.com/taskshare/taskshare/internal/logging"
	"github.com/taskshare/taskshare/kv"
)

// defaultMaxGenerateAttempts bounds ID and share code regeneration on collision.
const defaultMaxGenerateAttempts = 16

// Store holds the task and share collections in memory and writes every
// mutation through to its kv.Storage.
//
// The in-memory collections are authoritative for the lifetime of the
// Store: when a write fails the mutation is kept and the error wraps
// ErrPersist.
type Store struct {
	mu      sync.RWMutex
	storage kv.Storage
	logger  logging.Logger

	now          func() time.Time
	newID        func() string
	newShareCode func() string
	maxAttempts  int

	tasks  []Task
	shares []ShareRecord
}

// Options configures a Store. Zero values select the defaults.
type Options struct {
	Logger logging.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// NewID returns a candidate task ID. Defaults to ids.NewTaskID.
	NewID func() string

	// NewShareCode returns a candidate share code. Defaults to ids.NewShareCode.
	NewShareCode func() string

	// MaxGenerateAttempts bounds regeneration when a candidate ID or share
	// code is already taken.
	MaxGenerateAttempts int
}

// Open loads both collections from storage and returns a Store.
//
// Missing or corrupt collections load as empty; corruption is logged.
// Errors from the storage itself are returned.
func Open(ctx context.Context, storage kv.Storage, opts Options) (*Store, error) {
	if storage == nil {
		return nil, errors.New("todo store: nil storage")
	}
	s := &Store{
		storage:      storage,
		logger:       opts.Logger,
		now:          opts.Now,
		newID:        opts.NewID,
		newShareCode: opts.NewShareCode,
		maxAttempts:  opts.MaxGenerateAttempts,
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = ids.NewTaskID
	}
	if s.newShareCode == nil {
		s.newShareCode = ids.NewShareCode
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = defaultMaxGenerateAttempts
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory collections with the persisted ones.
func (s *Store) Reload(ctx context.Context) error {
	stored, err := kv.LoadCollection[storedTask](ctx, s.storage, kv.TasksKey)
	if err != nil {
		if !errors.Is(err, kv.ErrCorrupt) {
			return fmt.Errorf("load tasks: %w", err)
		}
		s.logger.Warn(ctx, "ignoring corrupt task collection", "error", err)
		stored = nil
	}
	tasks := make([]Task, 0, len(stored))
	for _, record := range stored {
		tasks = append(tasks, record.task())
	}

	shares, err := kv.LoadCollection[ShareRecord](ctx, s.storage, kv.SharesKey)
	if err != nil {
		if !errors.Is(err, kv.ErrCorrupt) {
			return fmt.Errorf("load shares: %w", err)
		}
		s.logger.Warn(ctx, "ignoring corrupt share collection", "error", err)
		shares = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = s.normalizeLoadedTasks(ctx, tasks)
	s.shares = s.normalizeLoadedShares(ctx, shares)
	return nil
}

// storedTask is the on-disk task record. Older files spell the creation
// time "createdAt"; it is read only when "created" is absent.
type storedTask struct {
	Task
	LegacyCreatedAt *time.Time `json:"createdAt"`
}

func (r storedTask) task() Task {
	task := r.Task
	if task.CreatedAt.IsZero() && r.LegacyCreatedAt != nil {
		task.CreatedAt = *r.LegacyCreatedAt
	}
	return task
}

// normalizeLoadedTasks drops records without an ID or with a duplicate ID
// and repairs fields that decode loosely.
func (s *Store) normalizeLoadedTasks(ctx context.Context, tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if task.ID == "" {
			s.logger.Warn(ctx, "dropping task without id", "title", task.Title)
			continue
		}
		if seen[task.ID] {
			s.logger.Warn(ctx, "dropping task with duplicate id", "id", task.ID)
			continue
		}
		seen[task.ID] = true

		priority, err := ParsePriority(string(task.Priority))
		if err != nil {
			s.logger.Warn(ctx, "resetting unknown priority", "id", task.ID, "priority", string(task.Priority))
			priority = PriorityNone
		}
		task.Priority = priority
		if task.DueDate != nil && task.DueDate.IsZero() {
			task.DueDate = nil
		}
		switch {
		case task.Completed && task.CompletedAt == nil:
			completedAt := task.CreatedAt
			if task.UpdatedAt != nil {
				completedAt = *task.UpdatedAt
			}
			if completedAt.IsZero() {
				completedAt = s.now()
			}
			task.CompletedAt = &completedAt
		case !task.Completed && task.CompletedAt != nil:
			task.CompletedAt = nil
		}
		out = append(out, task)
	}
	return out
}

// normalizeLoadedShares enforces unique share codes (first record wins) and
// at most one record per task (most recent SharedAt wins). Records whose
// task is gone are kept so Resolve can report them as dangling.
func (s *Store) normalizeLoadedShares(ctx context.Context, shares []ShareRecord) []ShareRecord {
	byCode := make([]ShareRecord, 0, len(shares))
	seenCodes := make(map[string]bool, len(shares))
	for _, record := range shares {
		if record.ShareCode == "" || record.TodoID == "" {
			s.logger.Warn(ctx, "dropping incomplete share record", "code", record.ShareCode, "todo", record.TodoID)
			continue
		}
		if seenCodes[record.ShareCode] {
			s.logger.Warn(ctx, "dropping share record with duplicate code", "code", record.ShareCode)
			continue
		}
		seenCodes[record.ShareCode] = true
		byCode = append(byCode, record)
	}

	latest := make(map[string]int, len(byCode))
	for i, record := range byCode {
		if j, ok := latest[record.TodoID]; ok && byCode[j].SharedAt.After(record.SharedAt) {
			continue
		}
		latest[record.TodoID] = i
	}

	out := make([]ShareRecord, 0, len(latest))
	for i, record := range byCode {
		if latest[record.TodoID] != i {
			s.logger.Warn(ctx, "dropping superseded share record", "code", record.ShareCode, "todo", record.TodoID)
			continue
		}
		out = append(out, record)
	}
	return out
}

// Tasks returns a copy of the task collection, most recent first.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	for i, task := range s.tasks {
		out[i] = task.Clone()
	}
	return out
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.taskIndex(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return s.tasks[idx].Clone(), nil
}

// IDIndex returns an index over the current task IDs.
func (s *Store) IDIndex() IDIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewIDIndex(s.tasks)
}

// ResolveID returns the full task ID for a unique prefix.
func (s *Store) ResolveID(prefix string) (string, error) {
	return s.IDIndex().Resolve(prefix)
}

// taskIndex must be called with s.mu held.
func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// saveTasks must be called with s.mu held.
func (s *Store) saveTasks(ctx context.Context) error {
	if err := kv.SaveCollection(ctx, s.storage, kv.TasksKey, s.tasks); err != nil {
		s.logger.Error(ctx, "persist tasks", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// saveShares must be called with s.mu held.
func (s *Store) saveShares(ctx context.Context) error {
	if err := kv.SaveCollection(ctx, s.storage, kv.SharesKey, s.shares); err != nil {
		s.logger.Error(ctx, "persist shares", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

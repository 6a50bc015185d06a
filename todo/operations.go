package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Create adds a new task at the head of the collection.
//
// The title and description are trimmed; the title must be non-empty and at
// most MaxTitleLength characters. An empty priority means PriorityNone.
func (s *Store) Create(ctx context.Context, draft Draft) (Task, error) {
	title := strings.TrimSpace(draft.Title)
	if err := ValidateTitle(title); err != nil {
		return Task{}, err
	}
	priority := draft.Priority.Normalized()
	if err := ValidatePriority(priority); err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.unusedTaskID()
	if err != nil {
		return Task{}, err
	}

	task := Task{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(draft.Description),
		Priority:    priority,
		DueDate:     copyDueDate(draft.DueDate),
		CreatedAt:   s.now(),
	}

	s.tasks = append([]Task{task}, s.tasks...)
	s.logger.Debug(ctx, "created task", "id", task.ID)

	return task.Clone(), s.saveTasks(ctx)
}

// Update overwrites the stored task having task.ID with task.
//
// ID and CreatedAt always keep their stored values. UpdatedAt is set to the
// current time. CompletedAt is filled in or cleared to agree with Completed.
func (s *Store) Update(ctx context.Context, task Task) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndex(task.ID)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID)
	}
	existing := s.tasks[idx]

	now := s.now()
	updated := task.Clone()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Title = strings.TrimSpace(updated.Title)
	updated.Description = strings.TrimSpace(updated.Description)
	updated.Priority = updated.Priority.Normalized()
	updated.DueDate = copyDueDate(updated.DueDate)
	updated.UpdatedAt = &now
	switch {
	case updated.Completed && updated.CompletedAt == nil:
		updated.CompletedAt = &now
	case !updated.Completed:
		updated.CompletedAt = nil
	}

	if err := ValidateTask(&updated); err != nil {
		return Task{}, err
	}

	s.tasks[idx] = updated
	return updated.Clone(), s.saveTasks(ctx)
}

// ToggleComplete flips the completion state of a task.
func (s *Store) ToggleComplete(ctx context.Context, id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndex(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	task := &s.tasks[idx]
	if task.Completed {
		task.Completed = false
		task.CompletedAt = nil
	} else {
		now := s.now()
		task.Completed = true
		task.CompletedAt = &now
	}

	return task.Clone(), s.saveTasks(ctx)
}

// Delete removes a task together with its share record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	s.removeShares(id)
	s.logger.Debug(ctx, "deleted task", "id", id)

	return errors.Join(s.saveTasks(ctx), s.saveShares(ctx))
}

// unusedTaskID must be called with s.mu held.
func (s *Store) unusedTaskID() (string, error) {
	for range s.maxAttempts {
		id := s.newID()
		if id != "" && s.taskIndex(id) < 0 {
			return id, nil
		}
	}
	return "", ErrTaskIDExhausted
}

func copyDueDate(due *Date) *Date {
	if due == nil || due.IsZero() {
		return nil
	}
	out := *due
	return &out
}

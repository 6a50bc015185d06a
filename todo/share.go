package todo

import (
	"context"
	"fmt"
)

// Share creates a share record for a task and returns its share code.
// Any previous share of the task is replaced, so its old code stops
// resolving.
func (s *Store) Share(ctx context.Context, todoID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndex(todoID)
	if idx < 0 {
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, todoID)
	}

	code, err := s.unusedShareCode()
	if err != nil {
		return "", err
	}

	s.removeShares(todoID)
	s.shares = append(s.shares, ShareRecord{
		ShareCode:     code,
		TodoID:        todoID,
		OriginalTitle: s.tasks[idx].Title,
		SharedAt:      s.now(),
	})
	s.logger.Debug(ctx, "shared task", "id", todoID, "code", code)

	return code, s.saveShares(ctx)
}

// Resolve returns the task a share code points at.
//
// Both failures wrap ErrNotFound: ErrShareNotFound when the code is unknown
// and ErrDanglingShare when the task behind it no longer exists.
func (s *Store) Resolve(code string) (SharedTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.shares {
		if record.ShareCode != code {
			continue
		}
		idx := s.taskIndex(record.TodoID)
		if idx < 0 {
			return SharedTask{}, fmt.Errorf("%w: code %s references task %s", ErrDanglingShare, code, record.TodoID)
		}
		return sharedTask(s.tasks[idx], record), nil
	}
	return SharedTask{}, fmt.Errorf("%w: %s", ErrShareNotFound, code)
}

// Revoke removes the share record of a task. Revoking an unshared task is
// a no-op.
func (s *Store) Revoke(ctx context.Context, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeShares(todoID) {
		return nil
	}
	return s.saveShares(ctx)
}

// ListShared returns every task with an active share, in task order.
func (s *Store) ListShared() []SharedTask {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make(map[string]ShareRecord, len(s.shares))
	for _, record := range s.shares {
		records[record.TodoID] = record
	}

	out := make([]SharedTask, 0, len(records))
	for _, task := range s.tasks {
		record, ok := records[task.ID]
		if !ok {
			continue
		}
		out = append(out, sharedTask(task, record))
	}
	return out
}

// ShareCode returns the active share code of a task.
func (s *Store) ShareCode(todoID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.shares {
		if record.TodoID == todoID {
			return record.ShareCode, true
		}
	}
	return "", false
}

// IsShared reports whether a task has an active share.
func (s *Store) IsShared(todoID string) bool {
	_, ok := s.ShareCode(todoID)
	return ok
}

// Shares returns a copy of the share records, including dangling ones.
func (s *Store) Shares() []ShareRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ShareRecord(nil), s.shares...)
}

// removeShares must be called with s.mu held. It reports whether any
// record was removed.
func (s *Store) removeShares(todoID string) bool {
	kept := s.shares[:0:0]
	for _, record := range s.shares {
		if record.TodoID != todoID {
			kept = append(kept, record)
		}
	}
	removed := len(kept) != len(s.shares)
	s.shares = kept
	return removed
}

// unusedShareCode must be called with s.mu held.
func (s *Store) unusedShareCode() (string, error) {
	for range s.maxAttempts {
		code := s.newShareCode()
		if code != "" && !s.shareCodeTaken(code) {
			return code, nil
		}
	}
	return "", ErrShareCodeExhausted
}

func (s *Store) shareCodeTaken(code string) bool {
	for _, record := range s.shares {
		if record.ShareCode == code {
			return true
		}
	}
	return false
}

func sharedTask(task Task, record ShareRecord) SharedTask {
	return SharedTask{
		Task:      task.Clone(),
		IsShared:  true,
		SharedAt:  record.SharedAt,
		ShareCode: record.ShareCode,
	}
}

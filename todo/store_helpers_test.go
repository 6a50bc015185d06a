package todo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/taskshare/taskshare/kv"
)

var testEpoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeClock advances one minute per reading so timestamps are ordered.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: testEpoch}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

// sequence returns a generator yielding prefix-0001, prefix-0002, ...
func sequence(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%04d", prefix, n)
	}
}

// flakyStorage wraps a MemoryStorage and fails saves for keys in failSave.
type flakyStorage struct {
	*kv.MemoryStorage
	mu       sync.Mutex
	failSave map[string]bool
	loadErr  error
}

func newFlakyStorage() *flakyStorage {
	return &flakyStorage{MemoryStorage: kv.NewMemoryStorage(), failSave: map[string]bool{}}
}

func (f *flakyStorage) FailSaves(keys ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		f.failSave[key] = true
	}
}

func (f *flakyStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	return f.MemoryStorage.Load(ctx, key)
}

func (f *flakyStorage) Save(ctx context.Context, key string, data []byte) error {
	f.mu.Lock()
	fail := f.failSave[key]
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("quota exceeded for %s", key)
	}
	return f.MemoryStorage.Save(ctx, key, data)
}

func openTestStore(t *testing.T, storage kv.Storage) *Store {
	t.Helper()
	store, err := Open(context.Background(), storage, Options{
		Now:          newFakeClock().Now,
		NewID:        sequence("task"),
		NewShareCode: sequence("code"),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func newTestStore(t *testing.T) (*Store, *kv.MemoryStorage) {
	t.Helper()
	storage := kv.NewMemoryStorage()
	return openTestStore(t, storage), storage
}

func mustCreate(t *testing.T, store *Store, draft Draft) Task {
	t.Helper()
	task, err := store.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("create %q: %v", draft.Title, err)
	}
	return task
}

func mustShare(t *testing.T, store *Store, id string) string {
	t.Helper()
	code, err := store.Share(context.Background(), id)
	if err != nil {
		t.Fatalf("share %s: %v", id, err)
	}
	return code
}

func seed(t *testing.T, storage kv.Storage, key string, raw string) {
	t.Helper()
	if err := storage.Save(context.Background(), key, []byte(raw)); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func assertCompletionInvariant(t *testing.T, tasks []Task) {
	t.Helper()
	for _, task := range tasks {
		if task.Completed != (task.CompletedAt != nil) {
			t.Fatalf("task %s: completed=%v but completedAt=%v", task.ID, task.Completed, task.CompletedAt)
		}
	}
}

func taskIDs(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func taskTitles(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

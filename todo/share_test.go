package todo

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/taskshare/taskshare/internal/ids"
	"github.com/taskshare/taskshare/kv"
)

func TestShare(t *testing.T) {
	store, _ := newTestStore(t)
	task := mustCreate(t, store, Draft{Title: "Pay rent"})

	code := mustShare(t, store, task.ID)
	if code != "code-0001" {
		t.Fatalf("expected generated code, got %q", code)
	}

	records := store.Shares()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	record := records[0]
	if record.TodoID != task.ID || record.ShareCode != code || record.OriginalTitle != "Pay rent" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.SharedAt.IsZero() {
		t.Fatalf("expected sharedAt")
	}
}

func TestShare_DefaultCodesAreURLSafe(t *testing.T) {
	store, err := Open(context.Background(), kv.NewMemoryStorage(), Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	task := mustCreate(t, store, Draft{Title: "x"})
	code := mustShare(t, store, task.ID)
	if !ids.IsShareCode(code) {
		t.Fatalf("expected 10 alphanumeric characters, got %q", code)
	}
}

func TestShare_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Share(context.Background(), "missing")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if got := len(store.Shares()); got != 0 {
		t.Fatalf("expected no records, got %d", got)
	}
}

func TestShare_AtMostOnePerTask(t *testing.T) {
	store, _ := newTestStore(t)
	task := mustCreate(t, store, Draft{Title: "x"})

	first := mustShare(t, store, task.ID)
	second := mustShare(t, store, task.ID)
	if first == second {
		t.Fatalf("expected a fresh code on re-share")
	}

	count := 0
	for _, record := range store.Shares() {
		if record.TodoID == task.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one record, got %d", count)
	}
	if _, err := store.Resolve(first); !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("expected old code to stop resolving, got %v", err)
	}
	if _, err := store.Resolve(second); err != nil {
		t.Fatalf("expected new code to resolve, got %v", err)
	}
}

func TestShare_SnapshotsTitle(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	task := mustCreate(t, store, Draft{Title: "before"})
	code := mustShare(t, store, task.ID)

	task.Title = "after"
	if _, err := store.Update(ctx, task); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := store.Shares()[0].OriginalTitle; got != "before" {
		t.Fatalf("expected snapshot title, got %q", got)
	}
	resolved, err := store.Resolve(code)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Title != "after" {
		t.Fatalf("expected resolve to show current title, got %q", resolved.Title)
	}
}

func TestShare_RegeneratesCollidingCodes(t *testing.T) {
	candidates := []string{"AAAAAAAAAA", "AAAAAAAAAA", "BBBBBBBBBB"}
	next := 0
	store, err := Open(context.Background(), kv.NewMemoryStorage(), Options{
		NewShareCode: func() string {
			code := candidates[next]
			next++
			return code
		},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	a := mustCreate(t, store, Draft{Title: "a"})
	b := mustCreate(t, store, Draft{Title: "b"})

	if code := mustShare(t, store, a.ID); code != "AAAAAAAAAA" {
		t.Fatalf("expected first candidate, got %q", code)
	}
	if code := mustShare(t, store, b.ID); code != "BBBBBBBBBB" {
		t.Fatalf("expected collision to be skipped, got %q", code)
	}
}

func TestShare_CodeExhausted(t *testing.T) {
	store, err := Open(context.Background(), kv.NewMemoryStorage(), Options{
		NewShareCode:        func() string { return "AAAAAAAAAA" },
		MaxGenerateAttempts: 4,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	a := mustCreate(t, store, Draft{Title: "a"})
	b := mustCreate(t, store, Draft{Title: "b"})
	mustShare(t, store, a.ID)

	if _, err := store.Share(context.Background(), b.ID); !errors.Is(err, ErrShareCodeExhausted) {
		t.Fatalf("expected ErrShareCodeExhausted, got %v", err)
	}
	if store.IsShared(b.ID) {
		t.Fatalf("expected failed share to leave task unshared")
	}
}

func TestResolve(t *testing.T) {
	store, _ := newTestStore(t)
	task := mustCreate(t, store, Draft{Title: "x", Priority: PriorityLow})
	code := mustShare(t, store, task.ID)

	got, err := store.Resolve(code)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := SharedTask{
		Task:      task,
		IsShared:  true,
		SharedAt:  store.Shares()[0].SharedAt,
		ShareCode: code,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected shared task (-want +got):\n%s", diff)
	}
}

func TestResolve_UnknownAndDanglingAreDistinct(t *testing.T) {
	storage := kv.NewMemoryStorage()
	seed(t, storage, kv.SharesKey, `[{"shareCode":"dangling01","todoId":"gone","originalTitle":"x","sharedAt":"2024-01-01T00:00:00Z"}]`)
	store := openTestStore(t, storage)

	_, unknownErr := store.Resolve("unknown001")
	_, danglingErr := store.Resolve("dangling01")

	if !errors.Is(unknownErr, ErrNotFound) || !errors.Is(danglingErr, ErrNotFound) {
		t.Fatalf("expected both to be not found, got %v and %v", unknownErr, danglingErr)
	}
	if !errors.Is(unknownErr, ErrShareNotFound) || errors.Is(unknownErr, ErrDanglingShare) {
		t.Fatalf("expected unknown code error, got %v", unknownErr)
	}
	if !errors.Is(danglingErr, ErrDanglingShare) || errors.Is(danglingErr, ErrShareNotFound) {
		t.Fatalf("expected dangling error, got %v", danglingErr)
	}
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	store, storage := newTestStore(t)
	task := mustCreate(t, store, Draft{Title: "x"})
	code := mustShare(t, store, task.ID)

	if err := store.Revoke(ctx, task.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if store.IsShared(task.ID) {
		t.Fatalf("expected task to be unshared")
	}
	if _, err := store.Resolve(code); !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("expected revoked code not found, got %v", err)
	}
	if got := len(openTestStore(t, storage).Shares()); got != 0 {
		t.Fatalf("expected revoke persisted, got %d records", got)
	}

	// Revoking again, or revoking a task that never existed, is a no-op.
	if err := store.Revoke(ctx, task.ID); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
	if err := store.Revoke(ctx, "missing"); err != nil {
		t.Fatalf("revoke missing: %v", err)
	}
}

func TestListShared(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustCreate(t, store, Draft{Title: "a"})
	b := mustCreate(t, store, Draft{Title: "b"})
	c := mustCreate(t, store, Draft{Title: "c"})

	codeA := mustShare(t, store, a.ID)
	codeC := mustShare(t, store, c.ID)
	_ = b

	shared := store.ListShared()
	var got []string
	for _, task := range shared {
		if !task.IsShared || task.SharedAt.IsZero() {
			t.Fatalf("expected share metadata on %+v", task)
		}
		got = append(got, task.Title+"="+task.ShareCode)
	}

	// Task collection order: most recently created first.
	want := []string{"c=" + codeC, "a=" + codeA}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected shared list (-want +got):\n%s", diff)
	}
}

func TestShareCodeAndIsShared(t *testing.T) {
	store, _ := newTestStore(t)
	task := mustCreate(t, store, Draft{Title: "x"})

	if _, ok := store.ShareCode(task.ID); ok {
		t.Fatalf("expected no share code before sharing")
	}
	if store.IsShared(task.ID) {
		t.Fatalf("expected unshared")
	}

	code := mustShare(t, store, task.ID)
	got, ok := store.ShareCode(task.ID)
	if !ok || got != code {
		t.Fatalf("expected %q, got %q (ok=%v)", code, got, ok)
	}
	if !store.IsShared(task.ID) {
		t.Fatalf("expected shared")
	}
}

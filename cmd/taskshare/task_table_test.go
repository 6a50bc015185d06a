package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/taskshare/taskshare/todo"
)

func tableFixture(now time.Time) []todo.Task {
	due := todo.NewDate(2024, 5, 1)
	completedAt := now.Add(-time.Hour)
	return []todo.Task{
		{ID: "abc123", Title: "Pay rent", Priority: todo.PriorityHigh, DueDate: &due, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "abd456", Title: "Buy milk", Priority: todo.PriorityNone, Completed: true, CompletedAt: &completedAt, CreatedAt: now.Add(-3 * 24 * time.Hour)},
	}
}

func TestFormatTaskTable(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	got := formatTaskTable(tableFixture(now), func(id string) string { return id }, now)

	want := "ID      DONE  PRI   DUE         AGE  TITLE\n" +
		"abc123  [ ]   high  2024-05-01  2h   Pay rent\n" +
		"abd456  [x]   -     -           3d   Buy milk\n"
	if got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestFormatTaskTablePreservesAlignmentWithANSI(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := tableFixture(now)
	prefixLengths := todo.NewIDIndex(tasks).PrefixLengths()

	plain := formatTaskTable(tasks, func(id string) string { return id }, now)
	ansi := formatTaskTable(tasks, taskHighlighter(prefixLengths, func(id string, prefix int) string {
		if prefix <= 0 || prefix > len(id) {
			return id
		}
		return "\x1b[1m\x1b[36m" + id[:prefix] + "\x1b[0m" + id[prefix:]
	}), now)

	if !strings.Contains(ansi, "\x1b[1m\x1b[36mabc\x1b[0m123") {
		t.Fatalf("expected highlighted unique prefix, got %q", ansi)
	}
	if stripANSICodes(ansi) != plain {
		t.Fatalf("expected ANSI output to align with plain output\nplain:\n%s\nansi:\n%s", plain, ansi)
	}
}

func TestPrintTaskTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	printTaskTable(&buf, nil, func(id string) string { return id }, time.Now())
	if buf.String() != "No tasks found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPriorityShort(t *testing.T) {
	cases := map[todo.Priority]string{
		todo.PriorityHigh:   "high",
		todo.PriorityMedium: "med",
		todo.PriorityLow:    "low",
		todo.PriorityNone:   "-",
		"":                  "-",
	}
	for p, want := range cases {
		if got := priorityShort(p); got != want {
			t.Fatalf("priorityShort(%q) = %q, want %q", p, got, want)
		}
	}
}

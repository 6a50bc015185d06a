package main

import (
	"fmt"
	"io"
	"time"

	"github.com/taskshare/taskshare/internal/ui"
	"github.com/taskshare/taskshare/todo"
)

const detailLineWidth = 80

func printTaskDetail(w io.Writer, t todo.Task, shareURL string, highlight func(string) string, now time.Time) {
	const layout = "2006-01-02 15:04:05"

	fmt.Fprintf(w, "ID:        %s\n", highlight(t.ID))
	fmt.Fprintf(w, "Title:     %s\n", t.Title)
	fmt.Fprintf(w, "Priority:  %s\n", t.Priority.Normalized())
	fmt.Fprintf(w, "Due:       %s\n", formatDue(t.DueDate))
	fmt.Fprintf(w, "Created:   %s (%s)\n", t.CreatedAt.Format(layout), ui.FormatTimeAgo(t.CreatedAt, now))
	if t.UpdatedAt != nil {
		fmt.Fprintf(w, "Updated:   %s\n", t.UpdatedAt.Format(layout))
	}
	if t.Completed && t.CompletedAt != nil {
		took := "-"
		if d, ok := todo.CompletionData(t, now); ok {
			took = ui.FormatDurationShort(d)
		}
		fmt.Fprintf(w, "Completed: %s (took %s)\n", t.CompletedAt.Format(layout), took)
	}
	if shareURL != "" {
		fmt.Fprintf(w, "Shared:    %s\n", shareURL)
	}

	if t.Description != "" {
		fmt.Fprintf(w, "\nDescription:\n%s\n", renderMarkdownOrDash(t.Description, detailLineWidth))
	}
}

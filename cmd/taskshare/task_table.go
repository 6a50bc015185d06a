package main

import (
	"fmt"
	"io"
	"time"

	"github.com/taskshare/taskshare/internal/ui"
	"github.com/taskshare/taskshare/todo"
)

func printTaskTable(w io.Writer, tasks []todo.Task, highlight func(string) string, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	fmt.Fprint(w, formatTaskTable(tasks, highlight, now))
}

func formatTaskTable(tasks []todo.Task, highlight func(string) string, now time.Time) string {
	table := ui.NewTable([]string{"ID", "DONE", "PRI", "DUE", "AGE", "TITLE"}, len(tasks))
	for _, t := range tasks {
		table.AddRow(
			highlight(t.ID),
			checkbox(t.Completed),
			priorityShort(t.Priority),
			formatDue(t.DueDate),
			formatTaskAge(t, now),
			ui.TruncateCell(t.Title),
		)
	}
	return table.String()
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func priorityShort(p todo.Priority) string {
	switch p.Normalized() {
	case todo.PriorityHigh:
		return "high"
	case todo.PriorityMedium:
		return "med"
	case todo.PriorityLow:
		return "low"
	default:
		return "-"
	}
}

func formatDue(due *todo.Date) string {
	if due == nil || due.IsZero() {
		return "-"
	}
	return due.String()
}

func formatTaskAge(t todo.Task, now time.Time) string {
	d, ok := todo.AgeData(t, now)
	if !ok {
		return "-"
	}
	return ui.FormatDurationShort(d)
}

package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/taskshare/taskshare/internal/ui"
	"github.com/taskshare/taskshare/todo"
)

const cardWidth = 60

var (
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

var priorityStyles = map[todo.Priority]lipgloss.Style{
	todo.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	todo.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	todo.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
}

// renderSharedCard renders the read-only view a share link recipient sees.
func renderSharedCard(task todo.SharedTask, width int) string {
	inner := width - cardStyle.GetHorizontalFrameSize()

	lines := []string{
		headingStyle.Render("Shared Task") + "  " + badgeStyle.Render("[Shared View]"),
		"",
		headingStyle.Render(wordwrap.String(task.Title, inner)),
	}
	if task.Description != "" {
		lines = append(lines, "", wordwrap.String(task.Description, inner))
	}

	var meta []string
	if p := task.Priority.Normalized(); p != todo.PriorityNone {
		meta = append(meta, priorityStyles[p].Render(priorityLabel(p)))
	}
	if task.DueDate != nil && !task.DueDate.IsZero() {
		meta = append(meta, "Due "+ui.FormatDay(task.DueDate.Time()))
	}
	if task.Completed {
		status := "Completed"
		if task.CompletedAt != nil {
			status += " " + ui.FormatDay(*task.CompletedAt)
		}
		meta = append(meta, doneStyle.Render(status))
	}
	if len(meta) > 0 {
		lines = append(lines, "", joinSegments(meta, inner))
	}

	footer := joinSegments([]string{
		"Created " + ui.FormatDay(task.CreatedAt),
		"Shared " + ui.FormatDay(task.SharedAt),
	}, inner)
	lines = append(lines, "", mutedStyle.Render(footer))

	return cardStyle.Width(width - cardStyle.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

const segmentSeparator = "  ·  "

// joinSegments joins segments with segmentSeparator, starting a new line
// instead whenever the next segment would not fit in width. A segment is
// never split across lines.
func joinSegments(segments []string, width int) string {
	var b strings.Builder
	lineWidth := 0
	for i, segment := range segments {
		w := lipgloss.Width(segment)
		if i > 0 {
			if lineWidth+lipgloss.Width(segmentSeparator)+w > width {
				b.WriteByte('\n')
				lineWidth = 0
			} else {
				b.WriteString(segmentSeparator)
				lineWidth += lipgloss.Width(segmentSeparator)
			}
		}
		b.WriteString(segment)
		lineWidth += w
	}
	return b.String()
}

func priorityLabel(p todo.Priority) string {
	switch p {
	case todo.PriorityHigh:
		return "High priority"
	case todo.PriorityMedium:
		return "Medium priority"
	case todo.PriorityLow:
		return "Low priority"
	default:
		return ""
	}
}

package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/taskshare/taskshare/todo"
)

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	// ID is the task ID (only for updates).
	ID string
	// Title is the task title.
	Title string
	// Priority is the task priority (none, low, medium, high).
	Priority string
	// Due is the due date as YYYY-MM-DD, or empty.
	Due string
	// Completed is the completion state (only for updates).
	Completed bool
	// Description is the task description.
	Description string
}

// DefaultCreateData returns TaskData with default values for creating a new task.
func DefaultCreateData() TaskData {
	return TaskData{
		Priority: string(todo.PriorityNone),
	}
}

// DataFromTask creates TaskData from an existing task for editing.
func DataFromTask(t *todo.Task) TaskData {
	data := TaskData{
		IsUpdate:    true,
		ID:          t.ID,
		Title:       t.Title,
		Priority:    string(t.Priority.Normalized()),
		Completed:   t.Completed,
		Description: t.Description,
	}
	if t.DueDate != nil {
		data.Due = t.DueDate.String()
	}
	return data
}

var taskTemplate = template.Must(template.New("task").Parse(`title = {{ printf "%q" .Title }}
priority = {{ printf "%q" .Priority }} # none, low, medium, high
due = {{ printf "%q" .Due }} # YYYY-MM-DD, empty for none
{{- if .IsUpdate }}
completed = {{ .Completed }}
{{- end }}
---
{{ .Description }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Title       string `toml:"title"`
	Priority    string `toml:"priority"`
	Due         string `toml:"due"`
	Completed   *bool  `toml:"completed"`
	Description string `toml:"-"`

	priority todo.Priority
	dueDate  *todo.Date
}

// ParseTaskTOML parses the TOML content from the editor.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTask
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Description = strings.TrimSpace(body)

	if err := todo.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	priority, err := todo.ParsePriority(parsed.Priority)
	if err != nil {
		return nil, err
	}
	parsed.priority = priority
	parsed.Priority = string(priority)

	if due := strings.TrimSpace(parsed.Due); due != "" {
		date, err := todo.ParseDate(due)
		if err != nil {
			return nil, err
		}
		parsed.dueDate = &date
		parsed.Due = date.String()
	} else {
		parsed.Due = ""
	}

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func createTaskTempFile() (*os.File, error) {
	return os.CreateTemp("", "taskshare-task-*.md")
}

// EditTask opens the editor for a task and returns the parsed result.
// For create: pass nil for existing.
// For update: pass the existing task.
func EditTask(existing *todo.Task) (*ParsedTask, error) {
	var data TaskData
	if existing == nil {
		data = DefaultCreateData()
	} else {
		data = DataFromTask(existing)
	}
	return EditTaskWithData(data)
}

// EditTaskWithData opens the editor with pre-populated data and returns the parsed result.
func EditTaskWithData(data TaskData) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTaskTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited))
}

// ToDraft converts a ParsedTask to a todo.Draft.
func (p *ParsedTask) ToDraft() todo.Draft {
	return todo.Draft{
		Title:       p.Title,
		Description: p.Description,
		Priority:    p.priority,
		DueDate:     p.dueDate,
	}
}

// ApplyTo returns task with the edited fields overwritten. The completion
// state only changes when the editor output carried a completed field.
func (p *ParsedTask) ApplyTo(task todo.Task) todo.Task {
	out := task.Clone()
	out.Title = p.Title
	out.Description = p.Description
	out.Priority = p.priority
	out.DueDate = p.dueDate
	if p.Completed != nil {
		out.Completed = *p.Completed
	}
	return out
}

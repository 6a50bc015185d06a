package web

import (
	"html/template"
	"time"

	"github.com/taskshare/taskshare/internal/ui"
	"github.com/taskshare/taskshare/todo"
)

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"formatDay":         formatDay,
		"formatOptionalDay": formatOptionalDay,
		"formatDueDate":     formatDueDate,
		"showPriority":      func(p todo.Priority) bool { return p.Normalized() != todo.PriorityNone },
	}
	return template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
}

func formatDay(value time.Time) string {
	return ui.FormatDay(value)
}

func formatOptionalDay(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return ui.FormatDay(*value)
}

func formatDueDate(value *todo.Date) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return ui.FormatDay(value.Time())
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{if .Task}}{{.Task.Title}} · {{end}}Shared Task</title>
  <style>
    :root {
      color-scheme: light;
    }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: radial-gradient(circle at top left, #f4efe3 0%, #fcfaf6 55%, #f6f2e8 100%);
    }
    header {
      display: flex;
      justify-content: space-between;
      align-items: center;
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
      background: rgba(255, 255, 255, 0.72);
    }
    header h1 {
      margin: 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    main {
      max-width: 720px;
      margin: 0 auto;
      padding: 28px 24px;
    }
    .card {
      background: #ffffff;
      border: 1px solid #d7cdbd;
      border-radius: 14px;
      box-shadow: 0 8px 24px rgba(60, 45, 30, 0.08);
      overflow: hidden;
    }
    .card-body {
      padding: 22px;
    }
    .card-footer {
      padding: 14px 22px;
      background: #f7f2e8;
      font-size: 14px;
      color: #5b5148;
    }
    .title.completed {
      text-decoration: line-through;
      color: #8a7f73;
    }
    .description {
      white-space: pre-wrap;
      color: #4a423a;
    }
    .badges {
      display: flex;
      flex-wrap: wrap;
      gap: 8px;
      margin-top: 14px;
    }
    .badge {
      padding: 2px 10px;
      border-radius: 999px;
      font-size: 13px;
      border: 1px solid #d1c6b6;
      background: #f5efe4;
    }
    .badge.priority-high { background: #fbe4e0; border-color: #e9b7ae; }
    .badge.priority-medium { background: #fbf1d8; border-color: #e8d29a; }
    .badge.priority-low { background: #e3f1e1; border-color: #b5d6af; }
    .badge.completed { background: #e3f1e1; border-color: #b5d6af; }
    .message {
      text-align: center;
      padding: 32px 22px;
    }
    .share-url {
      font-family: ui-monospace, "SF Mono", monospace;
      word-break: break-all;
    }
  </style>
</head>
<body>
  <header>
    <h1>Shared Task</h1>
    <span class="badge">Shared View</span>
  </header>
  <main>
    {{if .Task}}
    {{with .Task}}
    <article class="card">
      <div class="card-body">
        <h2 class="title{{if .Completed}} completed{{end}}">{{.Title}}</h2>
        {{if .Description}}<p class="description">{{.Description}}</p>{{end}}
        <div class="badges">
          {{if showPriority .Priority}}<span class="badge priority-{{.Priority}}">{{.Priority}} priority</span>{{end}}
          {{if .DueDate}}<span class="badge">Due {{formatDueDate .DueDate}}</span>{{end}}
          {{if .Completed}}<span class="badge completed">Completed {{formatOptionalDay .CompletedAt}}</span>{{end}}
        </div>
      </div>
      <div class="card-footer">
        Created {{formatDay .CreatedAt}} · Shared {{formatDay .SharedAt}}
      </div>
    </article>
    {{end}}
    <p class="share-url">{{.ShareURL}}</p>
    {{else}}
    <div class="card message">
      <h2>Task not found</h2>
      <p>{{.Message}}</p>
    </div>
    {{end}}
  </main>
</body>
</html>
`

package main

import (
	"strings"

	"github.com/taskshare/taskshare/internal/markdown"
)

func renderMarkdownOrDash(value string, width int) string {
	formatted := string(markdown.Render(width, 0, []byte(value)))
	if strings.TrimSpace(formatted) == "" {
		return "-"
	}
	return formatted
}

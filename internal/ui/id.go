// Package ui holds the terminal formatting shared by taskshare commands.
package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// HighlightID returns id with its first prefixLen characters emphasized
// when stdout is a color-capable terminal.
func HighlightID(id string, prefixLen int) string {
	if !ColorEnabled() {
		return id
	}
	return highlightPrefix(id, prefixLen)
}

func highlightPrefix(id string, prefixLen int) string {
	if id == "" || prefixLen <= 0 || prefixLen > len(id) {
		return id
	}
	return ansiBold + ansiCyan + id[:prefixLen] + ansiReset + id[prefixLen:]
}

// ColorEnabled reports whether stdout should receive ANSI styling.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrefixLength looks up the unique prefix length for id, ignoring case.
// Unknown IDs have a prefix length of zero.
func PrefixLength(lengths map[string]int, id string) int {
	if id == "" || lengths == nil {
		return 0
	}
	return lengths[strings.ToLower(id)]
}

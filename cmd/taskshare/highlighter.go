package main

import "github.com/taskshare/taskshare/internal/ui"

// highlightID is swapped out by tests that need deterministic styling.
var highlightID = ui.HighlightID

func taskHighlighter(prefixLengths map[string]int, highlight func(string, int) string) func(string) string {
	return func(id string) string {
		if id == "" {
			return id
		}
		return highlight(id, ui.PrefixLength(prefixLengths, id))
	}
}

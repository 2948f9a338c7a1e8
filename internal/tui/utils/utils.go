// Package utils provides shared utility functions for the TUI.
package utils

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hy4ri/tasklist/internal/tui/state"
	"github.com/mattn/go-runewidth"
)

// TruncateString truncates a string to the given width, appending "…" if truncated.
// It handles wide characters correctly using runewidth.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxLen {
		return s
	}

	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxLen-1 { // -1 for ellipsis
			return s[:i] + "…"
		}
		w += rw
	}

	return s
}

// RelativeTime renders t relative to now ("3 minutes ago"). A zero time
// renders as the empty string.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// CountTasks returns how many tasks are open and how many are completed.
func CountTasks(tasks []state.Task) (open, done int) {
	for _, t := range tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	return open, done
}

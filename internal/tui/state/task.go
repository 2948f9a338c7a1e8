package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/hy4ri/tasklist/internal/api"
)

// Task is a task as held in local state.
type Task struct {
	ID        api.TaskID
	Text      string
	Completed bool
	CreatedAt time.Time // zero when unknown
}

// FromRemote maps a server record to a local task (title becomes Text).
func FromRemote(t api.Task) Task {
	return Task{
		ID:        t.ID,
		Text:      t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedTime(),
	}
}

// Filter selects which tasks are visible.
type Filter int

const (
	FilterAll Filter = iota
	FilterCompleted
	FilterIncomplete
)

var filterNames = [...]string{
	FilterAll:        "all",
	FilterCompleted:  "completed",
	FilterIncomplete: "incomplete",
}

// Filters lists every filter in selector order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterIncomplete}
}

// String returns the config/CLI name of the filter.
func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

// Label is the human-readable selector label.
func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterIncomplete:
		return "Not completed"
	default:
		return "All"
	}
}

// ParseFilter parses a filter name. The empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "incomplete", "open", "todo":
		return FilterIncomplete, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, completed or incomplete)", s)
}

// Next cycles to the following filter.
func (f Filter) Next() Filter {
	return (f + 1) % Filter(len(filterNames))
}

// Match reports whether t is visible under f.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterIncomplete:
		return !t.Completed
	default:
		return true
	}
}

// Apply returns the tasks visible under f, in their original order.
// The result never aliases tasks.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

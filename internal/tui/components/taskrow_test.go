package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/tasklist/internal/tui/state"
)

func TestRenderTaskRowControls(t *testing.T) {
	open := TaskRow{Task: state.Task{ID: "1", Text: "Buy milk"}, Width: 120, VimMode: true}
	out := RenderTaskRow(open)

	for _, want := range []string{"Buy milk", "[ ]", "[x]", "complete", "[e]", "edit", "[dd]", "delete"} {
		if !strings.Contains(out, want) {
			t.Errorf("open row missing %q: %q", want, out)
		}
	}

	done := open
	done.Task.Completed = true
	out = RenderTaskRow(done)
	if !strings.Contains(out, "undo") {
		t.Errorf("completed row should offer undo: %q", out)
	}
	if strings.Contains(out, "complete") {
		t.Errorf("completed row should not offer complete: %q", out)
	}

	single := open
	single.VimMode = false
	if !strings.Contains(RenderTaskRow(single), "[d]") {
		t.Error("single-key mode should show [d] for delete")
	}
}

func TestRenderTaskRowIsPure(t *testing.T) {
	row := TaskRow{
		Task:     state.Task{ID: "1", Text: "Pay rent", CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
		Position: 3,
		Selected: true,
		Width:    80,
		Now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	first := RenderTaskRow(row)
	if first != RenderTaskRow(row) {
		t.Error("same input rendered differently")
	}
	if !strings.Contains(first, "3 hours ago") {
		t.Errorf("expected relative creation time: %q", first)
	}
	if !strings.Contains(first, "> ") {
		t.Errorf("selected row should show the cursor: %q", first)
	}
}

func TestRenderTaskRowTruncates(t *testing.T) {
	row := TaskRow{
		Task:  state.Task{ID: "1", Text: strings.Repeat("very long task text ", 10)},
		Width: 60,
	}
	out := RenderTaskRow(row)
	if w := lipgloss.Width(out); w > 60 {
		t.Errorf("row width %d exceeds 60: %q", w, out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("expected ellipsis in truncated row: %q", out)
	}
}

func TestRenderTaskRowNarrowDropsControls(t *testing.T) {
	out := RenderTaskRow(TaskRow{Task: state.Task{ID: "1", Text: "Walk dog"}, Width: 20})
	if strings.Contains(out, "delete") {
		t.Errorf("narrow row should drop controls: %q", out)
	}
}

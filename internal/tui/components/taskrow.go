package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/tasklist/internal/tui/state"
	"github.com/hy4ri/tasklist/internal/tui/styles"
	"github.com/hy4ri/tasklist/internal/tui/utils"
)

// TaskRow is everything needed to draw one row.
type TaskRow struct {
	Task     state.Task
	Position int // position in the filtered view
	Selected bool
	Editing  bool // the row's text is loaded in the input
	VimMode  bool
	Width    int
	Now      time.Time
}

// Controls returns the row's action hints: complete/undo, edit and delete.
func (r TaskRow) Controls() []string {
	toggle := "complete"
	if r.Task.Completed {
		toggle = "undo"
	}
	del := "d"
	if r.VimMode {
		del = "dd"
	}
	return []string{
		controlHint("x", toggle),
		controlHint("e", "edit"),
		controlHint(del, "delete"),
	}
}

func controlHint(key, label string) string {
	return styles.TaskControlKey.Render("["+key+"]") + styles.TaskControl.Render(" "+label)
}

// RenderTaskRow renders a single task line. It depends only on its argument.
func RenderTaskRow(r TaskRow) string {
	cursor := "  "
	if r.Selected {
		cursor = "> "
	}

	checkbox := styles.CheckboxUnchecked
	if r.Task.Completed {
		checkbox = styles.CheckboxChecked
	}

	created := ""
	if rel := utils.RelativeTime(r.Task.CreatedAt, r.Now); rel != "" {
		created = styles.TaskCreated.Render("· " + rel)
	}

	controls := "  " + strings.Join(r.Controls(), " ")

	marker := ""
	if r.Editing {
		marker = styles.TaskEditing.Render("✎ ")
	}

	prefix := cursor + checkbox + " " + marker
	fixed := lipgloss.Width(prefix) + lipgloss.Width(created) + lipgloss.Width(controls) + 3 // row padding
	textWidth := r.Width - fixed
	if r.Width <= 0 {
		textWidth = lipgloss.Width(r.Task.Text)
	}
	if textWidth < 4 {
		// Too narrow for everything: drop the extras before the text.
		created, controls = "", ""
		textWidth = max(r.Width-lipgloss.Width(prefix)-3, 1)
	}

	textStyle := styles.TaskText
	if r.Task.Completed {
		textStyle = styles.TaskTextCompleted
	}
	text := textStyle.Render(utils.TruncateString(r.Task.Text, textWidth))

	line := prefix + text + created + controls

	style := styles.TaskItem
	if r.Selected {
		style = styles.TaskSelected
	}
	return style.Render(line)
}

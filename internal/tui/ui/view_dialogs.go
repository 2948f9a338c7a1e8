package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/tasklist/internal/tui/styles"
)

// renderAlertDialog renders the blocking failure alert.
func (r *Renderer) renderAlertDialog() string {
	width := min(60, max(r.Screen.Width-8, 20))
	msg := lipgloss.NewStyle().Width(width).Render(r.Screen.Alert.Message())

	return styles.ErrorDialog.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.DialogTitle.Foreground(styles.ErrorColor).Render("Error"),
			msg,
			"",
			styles.Subtitle.Render("Press enter to dismiss"),
		),
	)
}

// renderConfirmDialog renders the clear-all confirmation.
func (r *Renderer) renderConfirmDialog() string {
	n := len(r.State.Tasks)
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	return styles.Dialog.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.DialogTitle.Render("Clear all tasks"),
			fmt.Sprintf("Delete all %d %s on the server?", n, noun),
			"",
			styles.StatusBarKey.UnsetBackground().Render("y")+" yes   "+
				styles.StatusBarKey.UnsetBackground().Render("n")+" no",
		),
	)
}

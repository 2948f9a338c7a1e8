// Package ui renders the application screen.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/tasklist/internal/tui/logic"
	"github.com/hy4ri/tasklist/internal/tui/state"
	"github.com/hy4ri/tasklist/internal/tui/styles"
	"github.com/hy4ri/tasklist/internal/tui/utils"
)

// Renderer draws the controller's state. It never mutates it.
type Renderer struct {
	*logic.Handler
}

func NewRenderer(h *logic.Handler) *Renderer {
	return &Renderer{Handler: h}
}

func (r *Renderer) View() string {
	if r.Screen.Width == 0 {
		return "Loading..."
	}

	switch {
	case r.Screen.Alert != nil:
		return r.placeDialog(r.renderAlertDialog())
	case r.Screen.Confirming:
		return r.placeDialog(r.renderConfirmDialog())
	case r.Screen.ShowHelp:
		return r.placeDialog(r.renderHelp())
	}

	return r.renderMainView()
}

// renderMainView renders header, input, filter selector, list and status bar.
func (r *Renderer) renderMainView() string {
	parts := []string{
		r.renderHeader(),
		r.renderInput(),
		r.renderFilterBar(),
	}

	if r.State.Loading {
		parts = append(parts, styles.Spinner.Render(r.Screen.Spinner.View())+" Loading tasks...")
	} else {
		parts = append(parts, r.List.View())
	}

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	body = styles.App.Render(body)

	statusBar := r.renderStatusBar()
	bodyHeight := r.Screen.Height - lipgloss.Height(statusBar)
	if bodyHeight > 0 {
		body = lipgloss.Place(r.Screen.Width, bodyHeight, lipgloss.Left, lipgloss.Top, body)
	}
	return body + "\n" + statusBar
}

func (r *Renderer) renderHeader() string {
	open, done := utils.CountTasks(r.State.Tasks)
	counts := styles.Subtitle.Render(fmt.Sprintf("  %d open · %d done", open, done))
	return styles.Title.Render("Task List") + counts
}

// renderInput renders the text input with its submit label, which reads
// "Add" or "Save" depending on whether an edit session is open.
func (r *Renderer) renderInput() string {
	box := styles.Input
	if r.Screen.Focus == state.FocusInput {
		box = styles.InputFocused
	}
	input := box.Render(r.Screen.Input.View())
	submit := styles.SubmitButton.Render(r.State.SubmitLabel())

	row := lipgloss.JoinHorizontal(lipgloss.Center, input, " ", submit)
	if r.State.IsEditing() {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, styles.StatusBarText.UnsetBackground().Render("  esc to cancel"))
	}
	return row
}

// renderFilterBar renders the three filter options, with the clear-all
// control appended when there is anything to clear.
func (r *Renderer) renderFilterBar() string {
	var options []string
	for i, f := range state.Filters() {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == r.State.Filter {
			options = append(options, styles.FilterActive.Render(label))
		} else {
			options = append(options, styles.FilterOption.Render(label))
		}
	}
	bar := strings.Join(options, "")

	if len(r.State.Tasks) > 0 {
		bar += "   " + styles.TaskControlKey.Render("[C]") + styles.TaskControl.Render(" clear all")
	}
	return bar
}

func (r *Renderer) renderHelp() string {
	h := r.Screen.Help
	h.ShowAll = true
	return styles.Dialog.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.DialogTitle.Render("Keyboard Shortcuts"),
			h.View(r.Keymap),
			"",
			styles.Subtitle.Render("? or esc to close"),
		),
	)
}

func (r *Renderer) placeDialog(dialog string) string {
	return lipgloss.Place(r.Screen.Width, r.Screen.Height, lipgloss.Center, lipgloss.Center, dialog)
}

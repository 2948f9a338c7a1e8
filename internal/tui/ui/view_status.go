package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/tasklist/internal/tui/state"
	"github.com/hy4ri/tasklist/internal/tui/styles"
	"github.com/hy4ri/tasklist/internal/tui/utils"
)

func (r *Renderer) renderStatusBar() string {
	left := ""
	if r.Screen.StatusMsg != "" {
		msgStr := strings.ReplaceAll(r.Screen.StatusMsg, "\n", " ")
		left = styles.StatusBarSuccess.Render(msgStr)
	}

	right := strings.Join(r.getContextualHints(), " ")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	padding := styles.StatusBar.GetHorizontalFrameSize()

	// Ensure left doesn't overwhelm right
	maxLeftWidth := r.Screen.Width - rightWidth - padding - 4
	if leftWidth > maxLeftWidth && maxLeftWidth > 10 {
		left = styles.StatusBarSuccess.Render(utils.TruncateString(r.Screen.StatusMsg, maxLeftWidth))
		leftWidth = lipgloss.Width(left)
	}

	spacing := r.Screen.Width - leftWidth - rightWidth - padding
	if spacing < 0 {
		spacing = 0
	}

	return styles.StatusBar.Width(r.Screen.Width - padding).Render(left + strings.Repeat(" ", spacing) + right)
}

// getContextualHints returns the key hints for the focused part of the screen.
func (r *Renderer) getContextualHints() []string {
	hint := func(k, desc string) string {
		return styles.StatusBarKey.Render(k) + styles.StatusBarText.Render(":"+desc)
	}

	if r.Screen.Focus == state.FocusInput {
		submit := "add"
		if r.State.IsEditing() {
			submit = "save"
		}
		return []string{hint("enter", submit), hint("esc", "cancel"), hint("tab", "list")}
	}

	var hints []string
	for _, b := range r.Keymap.ShortHelp() {
		h := b.Help()
		hints = append(hints, hint(h.Key, h.Desc))
	}
	return hints
}

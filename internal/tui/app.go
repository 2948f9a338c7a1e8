// Package tui provides the terminal user interface for the task list.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/tasklist/internal/config"
	"github.com/hy4ri/tasklist/internal/notify"
	"github.com/hy4ri/tasklist/internal/tui/logic"
	"github.com/hy4ri/tasklist/internal/tui/state"
	"github.com/hy4ri/tasklist/internal/tui/styles"
	"github.com/hy4ri/tasklist/internal/tui/ui"
)

// App is the main Bubble Tea model for the application.
type App struct {
	handler  *logic.Handler
	renderer *ui.Renderer
}

// NewApp wires the controller and renderer from config.
func NewApp(ctx context.Context, client logic.TaskClient, cfg *config.Config, logger *slog.Logger, notifier notify.Notifier) (*App, error) {
	filter, err := state.ParseFilter(cfg.UI.DefaultFilter)
	if err != nil {
		return nil, fmt.Errorf("invalid default filter: %w", err)
	}

	h := logic.NewHandler(ctx, client, logic.Options{
		Filter:       filter,
		VimMode:      cfg.UI.VimMode,
		ConfirmClear: cfg.UI.ConfirmClear,
		NotifyErrors: cfg.UI.NotifyErrors,
		Logger:       logger,
		Notifier:     notifier,
	})
	h.Screen.Spinner.Style = styles.Spinner

	return &App{
		handler:  h,
		renderer: ui.NewRenderer(h),
	}, nil
}

// Init loads the task list.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.handler.Load(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, a.handler.Update(msg)
}

// View implements tea.Model.
func (a *App) View() string {
	return a.renderer.View()
}

// State returns the current task state.
func (a *App) State() state.State {
	return a.handler.State
}

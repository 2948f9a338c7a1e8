// Package logic is the application controller. It owns the task state,
// sequences remote calls as tea.Cmds and reconciles their results.
package logic

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/tasklist/internal/api"
	"github.com/hy4ri/tasklist/internal/logging"
	"github.com/hy4ri/tasklist/internal/notify"
	"github.com/hy4ri/tasklist/internal/tui/components"
	"github.com/hy4ri/tasklist/internal/tui/state"
)

// Options configures a Handler. Zero values are usable.
type Options struct {
	Filter       state.Filter
	VimMode      bool
	ConfirmClear bool
	NotifyErrors bool
	Logger       *slog.Logger
	Notifier     notify.Notifier
	Clipboard    func(string) error
}

// Handler is the application controller.
type Handler struct {
	State  state.State
	Screen *state.Screen
	List   *components.TaskListModel
	Keymap state.KeymapData
	Keys   state.KeyState

	ctx          context.Context
	client       TaskClient
	log          *slog.Logger
	notifier     notify.Notifier
	copyText     func(string) error
	confirmClear bool
	notifyErrors bool
}

// NewHandler creates a controller talking to client.
func NewHandler(ctx context.Context, client TaskClient, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	h := &Handler{
		State:        state.New(opts.Filter),
		Screen:       state.NewScreen(),
		List:         components.NewTaskList(opts.VimMode),
		Keymap:       state.DefaultKeymap(opts.VimMode),
		ctx:          ctx,
		client:       client,
		log:          opts.Logger,
		notifier:     opts.Notifier,
		copyText:     opts.Clipboard,
		confirmClear: opts.ConfirmClear,
		notifyErrors: opts.NotifyErrors,
	}
	h.sync()
	return h
}

// sync pushes State into the widgets that mirror it.
func (h *Handler) sync() {
	if h.Screen.Input.Value() != h.State.Input {
		h.Screen.Input.SetValue(h.State.Input)
		h.Screen.Input.CursorEnd()
	}
	h.List.SetTasks(h.State.Visible())
	h.List.SetEditing(h.State.EditTarget)
	h.List.SetTitle("Tasks · " + h.State.Filter.Label())
	if len(h.State.Tasks) == 0 {
		h.List.SetEmptyMessage("No tasks yet. Press a to add one.")
	} else {
		h.List.SetEmptyMessage("No " + h.emptyLabel() + " tasks.")
	}
}

func (h *Handler) emptyLabel() string {
	switch h.State.Filter {
	case state.FilterCompleted:
		return "completed"
	case state.FilterIncomplete:
		return "open"
	}
	return ""
}

// busy reports whether mutating actions are currently disabled.
func (h *Handler) busy() bool {
	return h.State.Loading
}

// Load fetches the task list and replaces local state with it.
func (h *Handler) Load() tea.Cmd {
	if h.busy() {
		return nil
	}
	h.State = h.State.BeginLoad()
	h.log.Debug("loading tasks")
	return tea.Batch(loadCmd(h.ctx, h.client), h.Screen.Spinner.Tick)
}

// Refresh reloads the task list from the server.
func (h *Handler) Refresh() tea.Cmd {
	h.Screen.StatusMsg = "Refreshing..."
	return h.Load()
}

// Add creates a task from the input. Blank input is a silent no-op.
func (h *Handler) Add() tea.Cmd {
	if h.busy() {
		return nil
	}
	req, ok := h.State.PlanAdd()
	if !ok {
		return nil
	}
	h.log.Debug("creating task", "title", req.Title)
	return createCmd(h.ctx, h.client, req)
}

// ToggleAt flips completion of the task at pos in the filtered view.
func (h *Handler) ToggleAt(pos int) tea.Cmd {
	if h.busy() {
		return nil
	}
	task, req, ok := h.State.PlanToggle(pos)
	if !ok {
		return nil
	}
	h.log.Debug("toggling task", "id", task.ID, "completed", *req.Completed)
	return toggleCmd(h.ctx, h.client, task.ID, req)
}

// DeleteAt deletes the task at pos in the filtered view.
func (h *Handler) DeleteAt(pos int) tea.Cmd {
	if h.busy() {
		return nil
	}
	task, ok := h.State.PlanDelete(pos)
	if !ok {
		return nil
	}
	h.log.Debug("deleting task", "id", task.ID)
	return deleteCmd(h.ctx, h.client, task.ID)
}

// BeginEditAt loads the task at pos into the input for editing.
func (h *Handler) BeginEditAt(pos int) tea.Cmd {
	if h.busy() {
		return nil
	}
	next, ok := h.State.BeginEdit(pos)
	if !ok {
		return nil
	}
	h.State = next
	h.setFocus(state.FocusInput)
	h.sync()
	return nil
}

// SaveEdit sends the edited text for the open edit session.
func (h *Handler) SaveEdit() tea.Cmd {
	if h.busy() {
		return nil
	}
	id, req, ok := h.State.PlanSaveEdit()
	if !ok {
		return nil
	}
	h.log.Debug("saving task", "id", id)
	return saveCmd(h.ctx, h.client, id, req)
}

// CancelEdit closes the edit session without saving.
func (h *Handler) CancelEdit() {
	if !h.State.IsEditing() {
		return
	}
	h.State = h.State.CancelEdit()
	h.sync()
}

// Submit adds or saves depending on whether an edit session is open.
func (h *Handler) Submit() tea.Cmd {
	if h.State.IsEditing() {
		return h.SaveEdit()
	}
	return h.Add()
}

// RequestClear starts clear-all, asking for confirmation when configured.
func (h *Handler) RequestClear() tea.Cmd {
	if h.busy() || len(h.State.Tasks) == 0 {
		return nil
	}
	if h.confirmClear {
		h.Screen.Confirming = true
		return nil
	}
	return h.ClearAll()
}

// ConfirmClear answers the clear-all confirmation.
func (h *Handler) ConfirmClear(yes bool) tea.Cmd {
	h.Screen.Confirming = false
	if !yes {
		return nil
	}
	return h.ClearAll()
}

// ClearAll deletes every task on the server. Local state is emptied only when
// every delete succeeded.
func (h *Handler) ClearAll() tea.Cmd {
	if h.busy() {
		return nil
	}
	ids := h.State.PlanClear()
	if len(ids) == 0 {
		return nil
	}
	h.log.Info("clearing tasks", "count", len(ids))
	return clearCmd(h.ctx, h.client, ids)
}

// SetFilter changes the visible subset. The edit session is kept.
func (h *Handler) SetFilter(f state.Filter) {
	h.State = h.State.WithFilter(f)
	h.sync()
}

// CopyAt copies the text of the task at pos to the clipboard.
func (h *Handler) CopyAt(pos int) tea.Cmd {
	task, ok := h.State.Resolve(pos)
	if !ok {
		return nil
	}
	return copyCmd(h.copyText, task.Text)
}

// locate re-derives the filtered position of a row event. The event's id wins
// over its position; an event for a task that is no longer visible is dropped.
func (h *Handler) locate(msg components.TaskActionMsg) (int, bool) {
	visible := h.State.Visible()
	if msg.Position >= 0 && msg.Position < len(visible) && visible[msg.Position].ID == msg.ID {
		return msg.Position, true
	}
	for i, t := range visible {
		if t.ID == msg.ID {
			return i, true
		}
	}
	return 0, false
}

func (h *Handler) handleTaskAction(msg components.TaskActionMsg) tea.Cmd {
	pos, ok := h.locate(msg)
	if !ok {
		h.log.Debug("dropping stale row action", "action", msg.Action, "id", msg.ID)
		return nil
	}
	switch msg.Action {
	case components.RowToggle:
		return h.ToggleAt(pos)
	case components.RowEdit:
		return h.BeginEditAt(pos)
	case components.RowDelete:
		return h.DeleteAt(pos)
	case components.RowCopy:
		return h.CopyAt(pos)
	}
	return nil
}

func (h *Handler) setFocus(f state.Focus) {
	h.Screen.Focus = f
	h.Keys.Reset()
	if f == state.FocusInput {
		h.Screen.Input.Focus()
		h.List.Blur()
		return
	}
	h.Screen.Input.Blur()
	h.List.Focus()
}

// Selected returns the id of the task under the list cursor, if any.
func (h *Handler) Selected() (api.TaskID, bool) {
	task, ok := h.List.SelectedTask()
	return task.ID, ok
}

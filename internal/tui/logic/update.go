package logic

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/tasklist/internal/tui/components"
	"github.com/hy4ri/tasklist/internal/tui/state"
)

// Update applies one message and returns the follow-up command.
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	cmd := h.update(msg)
	h.sync()
	return cmd
}

func (h *Handler) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return h.handleKeyMsg(msg)

	case tea.MouseMsg:
		_, cmd := h.List.Update(msg)
		return cmd

	case tea.WindowSizeMsg:
		h.handleWindowSizeMsg(msg)
		return nil

	case spinner.TickMsg:
		if !h.State.Loading {
			return nil
		}
		var cmd tea.Cmd
		h.Screen.Spinner, cmd = h.Screen.Spinner.Update(msg)
		return cmd

	case components.TaskActionMsg:
		return h.handleTaskAction(msg)

	case components.CursorMovedMsg:
		return nil

	case statusMsg:
		h.Screen.StatusMsg = msg.msg
		return nil

	case failureMsg:
		h.handleFailure(msg.failure)
		return nil

	case tasksLoadedMsg:
		h.State = h.State.Loaded(msg.tasks)
		h.Screen.StatusMsg = fmt.Sprintf("Loaded %d tasks", len(msg.tasks))
		h.log.Info("tasks loaded", "count", len(msg.tasks))
		return nil

	case taskCreatedMsg:
		h.State = h.State.Added(msg.task)
		h.Screen.StatusMsg = "Task added"
		h.log.Info("task created", "id", msg.task.ID)
		return nil

	case taskToggledMsg:
		h.State = h.State.CompletionSet(msg.id, msg.completed)
		if msg.completed {
			h.Screen.StatusMsg = "Task completed"
		} else {
			h.Screen.StatusMsg = "Task reopened"
		}
		h.log.Info("task updated", "id", msg.id, "completed", msg.completed)
		return nil

	case taskSavedMsg:
		h.State = h.State.Saved(msg.id, msg.title)
		h.Screen.StatusMsg = "Task saved"
		h.log.Info("task updated", "id", msg.id)
		return nil

	case taskDeletedMsg:
		h.State = h.State.Removed(msg.id)
		h.Screen.StatusMsg = "Task deleted"
		h.log.Info("task deleted", "id", msg.id)
		return nil

	case tasksClearedMsg:
		h.State = h.State.Cleared()
		h.Screen.StatusMsg = fmt.Sprintf("Cleared %d tasks", msg.count)
		h.log.Info("tasks cleared", "count", msg.count)
		return nil
	}

	// Forward non-key messages (like blink) to the input.
	if h.Screen.Focus == state.FocusInput {
		var cmd tea.Cmd
		h.Screen.Input, cmd = h.Screen.Input.Update(msg)
		return cmd
	}
	return nil
}

func (h *Handler) handleWindowSizeMsg(msg tea.WindowSizeMsg) {
	h.Screen.Width = msg.Width
	h.Screen.Height = msg.Height
	h.Screen.Help.Width = msg.Width

	// Reserve space for header, input box (3 lines), filter bar, status bar
	// and app padding.
	listHeight := msg.Height - 11
	if listHeight < 3 {
		listHeight = 3
	}
	listWidth := msg.Width - 4
	if listWidth < 20 {
		listWidth = 20
	}
	h.List.SetSize(listWidth, listHeight)

	inputWidth := listWidth - 14 // border, padding and submit label
	if inputWidth < 10 {
		inputWidth = 10
	}
	h.Screen.Input.Width = inputWidth
}

func (h *Handler) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	switch {
	case h.Screen.Alert != nil:
		return h.handleAlertKey(msg)
	case h.Screen.Confirming:
		return h.handleConfirmKey(msg)
	case h.Screen.ShowHelp:
		switch msg.String() {
		case "?", "esc", "q":
			h.Screen.ShowHelp = false
		}
		return nil
	case h.Screen.Focus == state.FocusInput:
		return h.handleInputKey(msg)
	}
	return h.handleListKey(msg)
}

// handleAlertKey only lets the user dismiss the alert.
func (h *Handler) handleAlertKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc", " ", "q":
		h.Screen.Alert = nil
	}
	return nil
}

func (h *Handler) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		return h.ConfirmClear(true)
	case "n", "N", "esc", "q":
		return h.ConfirmClear(false)
	}
	return nil
}

func (h *Handler) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, h.Keymap.Submit):
		return h.Submit()
	case key.Matches(msg, h.Keymap.Cancel):
		if h.State.IsEditing() {
			h.CancelEdit()
			return nil
		}
		h.setFocus(state.FocusList)
		return nil
	case key.Matches(msg, h.Keymap.SwitchFocus):
		h.setFocus(state.FocusList)
		return nil
	}

	var cmd tea.Cmd
	h.Screen.Input, cmd = h.Screen.Input.Update(msg)
	h.State = h.State.WithInput(h.Screen.Input.Value())
	return cmd
}

func (h *Handler) handleListKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, h.Keymap.Cancel) {
		h.Keys.Reset()
		h.CancelEdit()
		return nil
	}
	if key.Matches(msg, h.Keymap.Submit) {
		return h.List.Action(components.RowEdit)
	}

	action, _ := h.Keys.HandleKey(msg, h.Keymap)
	switch action {
	case state.ActionUp:
		h.List.MoveCursor(-1)
	case state.ActionDown:
		h.List.MoveCursor(1)
	case state.ActionTop:
		h.List.MoveToTop()
	case state.ActionBottom:
		h.List.MoveToBottom()
	case state.ActionHalfUp:
		h.List.MoveCursor(-h.List.PageSize())
	case state.ActionHalfDown:
		h.List.MoveCursor(h.List.PageSize())
	case state.ActionAdd:
		if h.State.IsEditing() {
			h.CancelEdit()
		}
		h.setFocus(state.FocusInput)
	case state.ActionEdit:
		return h.List.Action(components.RowEdit)
	case state.ActionComplete:
		return h.List.Action(components.RowToggle)
	case state.ActionDelete:
		return h.List.Action(components.RowDelete)
	case state.ActionCopy:
		return h.List.Action(components.RowCopy)
	case state.ActionNextFilter:
		h.SetFilter(h.State.Filter.Next())
	case state.ActionFilterAll:
		h.SetFilter(state.FilterAll)
	case state.ActionFilterCompleted:
		h.SetFilter(state.FilterCompleted)
	case state.ActionFilterIncomplete:
		h.SetFilter(state.FilterIncomplete)
	case state.ActionClear:
		return h.RequestClear()
	case state.ActionRefresh:
		return h.Refresh()
	case state.ActionHelp:
		h.Screen.ShowHelp = true
	case state.ActionSwitchFocus:
		h.setFocus(state.FocusInput)
	case state.ActionQuit:
		return tea.Quit
	}
	return nil
}

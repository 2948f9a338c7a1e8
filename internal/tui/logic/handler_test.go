package logic

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/tasklist/internal/api"
	"github.com/hy4ri/tasklist/internal/notify"
	"github.com/hy4ri/tasklist/internal/tui/components"
	"github.com/hy4ri/tasklist/internal/tui/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain runs cmd and every command it produces, feeding the messages back
// into the handler, the way the Bubble Tea loop would.
func drain(h *Handler, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, h.Update(msg))
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(h *Handler, keys ...string) {
	for _, k := range keys {
		drain(h, h.Update(keyMsg(k)))
	}
}

func newTestHandler(t *testing.T, opts Options, tasks ...api.Task) (*Handler, *fakeServer) {
	t.Helper()
	srv, client := newFakeServer(t, tasks...)
	h := NewHandler(context.Background(), client, opts)
	// A blinking cursor schedules timers forever; drain would never finish.
	h.Screen.Input.Cursor.SetMode(cursor.CursorStatic)
	drain(h, h.Load())
	return h, srv
}

func taskIDs(tasks []state.Task) []api.TaskID {
	out := make([]api.TaskID, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestLoad(t *testing.T) {
	h, _ := newTestHandler(t, Options{},
		api.Task{ID: "1", Title: "Buy milk"},
		api.Task{ID: "2", Title: "Walk dog", Completed: true},
	)

	assert.False(t, h.State.Loading)
	assert.Equal(t, []api.TaskID{"1", "2"}, taskIDs(h.State.Tasks))
	assert.Equal(t, "Walk dog", h.State.Tasks[1].Text)
	assert.Equal(t, 2, h.List.Len())
	assert.Nil(t, h.Screen.Alert)
}

func TestLoadFailureKeepsTasks(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})

	srv.with(func() { srv.failList = true })
	drain(h, h.Load())

	assert.False(t, h.State.Loading)
	assert.Equal(t, []api.TaskID{"1"}, taskIDs(h.State.Tasks))
	require.NotNil(t, h.Screen.Alert)
	assert.Equal(t, state.LoadFailure, h.Screen.Alert.Kind)
}

func TestAddScenario(t *testing.T) {
	h, srv := newTestHandler(t, Options{})

	h.State = h.State.WithInput("Buy milk")
	drain(h, h.Add())

	require.Len(t, h.State.Tasks, 1)
	assert.Equal(t, state.Task{ID: "1", Text: "Buy milk"}, h.State.Tasks[0])
	assert.Empty(t, h.State.Input)
	assert.Empty(t, h.Screen.Input.Value())
	assert.Contains(t, srv.requestLog(), "POST /api/tasks")
}

func TestAddThroughKeys(t *testing.T) {
	h, _ := newTestHandler(t, Options{VimMode: true})

	press(h, "B", "u", "y", " ", "m", "i", "l", "k")
	assert.Equal(t, "Buy milk", h.State.Input)

	press(h, "enter")
	require.Len(t, h.State.Tasks, 1)
	assert.Equal(t, "Buy milk", h.State.Tasks[0].Text)
	assert.Equal(t, "Task added", h.Screen.StatusMsg)
}

func TestAddBlankIssuesNoRequest(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})
	before := len(srv.requestLog())

	for _, input := range []string{"", "   ", "\t"} {
		h.State = h.State.WithInput(input)
		assert.Nil(t, h.Add(), "input %q", input)
		assert.Nil(t, h.Submit(), "input %q", input)
	}

	assert.Len(t, srv.requestLog(), before)
	assert.Len(t, h.State.Tasks, 1)
	assert.Nil(t, h.Screen.Alert)
}

func TestAddFailure(t *testing.T) {
	h, srv := newTestHandler(t, Options{})
	srv.with(func() { srv.failCreate = true })

	h.State = h.State.WithInput("Buy milk")
	drain(h, h.Add())

	assert.Empty(t, h.State.Tasks)
	assert.Equal(t, "Buy milk", h.State.Input, "input kept for retry")
	require.NotNil(t, h.Screen.Alert)
	assert.Equal(t, state.CreateFailure, h.Screen.Alert.Kind)

	var apiErr *api.APIError
	require.True(t, errors.As(h.Screen.Alert, &apiErr))
	assert.Equal(t, "insert failed", apiErr.Message)
}

func TestToggleScenario(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})

	drain(h, h.ToggleAt(0))

	assert.Equal(t, []state.Task{{ID: "1", Text: "Buy milk", Completed: true}}, h.State.Tasks)
	assert.Contains(t, srv.requestLog(), "PUT /api/tasks/1")

	drain(h, h.ToggleAt(0))
	assert.False(t, h.State.Tasks[0].Completed)
}

func TestToggleUnderFilterFlipsOnlyResolvedTask(t *testing.T) {
	h, _ := newTestHandler(t, Options{},
		api.Task{ID: "1", Title: "done", Completed: true},
		api.Task{ID: "2", Title: "open a"},
		api.Task{ID: "3", Title: "open b"},
	)
	h.SetFilter(state.FilterIncomplete)

	drain(h, h.ToggleAt(1))

	got := map[api.TaskID]bool{}
	for _, task := range h.State.Tasks {
		got[task.ID] = task.Completed
	}
	assert.Equal(t, map[api.TaskID]bool{"1": true, "2": false, "3": true}, got)
	assert.Equal(t, []api.TaskID{"2"}, taskIDs(h.State.Visible()))
}

func TestToggleFailureLeavesState(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})
	srv.with(func() { srv.failUpdate = true })

	drain(h, h.ToggleAt(0))

	assert.False(t, h.State.Tasks[0].Completed)
	require.NotNil(t, h.Screen.Alert)
	assert.Equal(t, state.UpdateFailure, h.Screen.Alert.Kind)
}

func TestDeleteUnderFilterScenario(t *testing.T) {
	h, srv := newTestHandler(t, Options{},
		api.Task{ID: "1", Title: "done", Completed: true},
		api.Task{ID: "2", Title: "open"},
	)
	h.SetFilter(state.FilterIncomplete)

	drain(h, h.DeleteAt(0))

	assert.Equal(t, []api.TaskID{"1"}, taskIDs(h.State.Tasks))
	assert.Contains(t, srv.requestLog(), "DELETE /api/tasks/2")
}

func TestDeleteFailureKeepsTask(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})
	srv.with(func() { srv.failDelete["1"] = true })

	drain(h, h.DeleteAt(0))

	assert.Len(t, h.State.Tasks, 1)
	require.NotNil(t, h.Screen.Alert)
	assert.Equal(t, state.DeleteFailure, h.Screen.Alert.Kind)
}

func TestEditAcrossFilterChangeScenario(t *testing.T) {
	h, srv := newTestHandler(t, Options{},
		api.Task{ID: "1", Title: "Buy milk", Completed: true},
		api.Task{ID: "2", Title: "Walk dog"},
	)

	drain(h, h.BeginEditAt(1))
	assert.Equal(t, "Walk dog", h.Screen.Input.Value())
	assert.Equal(t, "Save", h.State.SubmitLabel())
	assert.Equal(t, state.FocusInput, h.Screen.Focus)

	h.SetFilter(state.FilterCompleted)
	h.State = h.State.WithInput("Walk the dog")
	drain(h, h.Submit())

	task, ok := h.State.Find("2")
	require.True(t, ok)
	assert.Equal(t, "Walk the dog", task.Text)
	assert.False(t, task.Completed)
	assert.False(t, h.State.IsEditing())
	assert.Empty(t, h.State.Input)
	assert.Equal(t, "Walk the dog", srv.snapshot()[1].Title)
}

func TestSaveUsesServerTitle(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})
	srv.with(func() { srv.ignoreTitle = true })

	drain(h, h.BeginEditAt(0))
	h.State = h.State.WithInput("Buy oat milk")
	drain(h, h.SaveEdit())

	assert.Equal(t, "Buy milk", h.State.Tasks[0].Text)
}

func TestSaveFailureKeepsEditSession(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})
	srv.with(func() { srv.failUpdate = true })

	drain(h, h.BeginEditAt(0))
	h.State = h.State.WithInput("Buy oat milk")
	drain(h, h.SaveEdit())

	assert.True(t, h.State.IsEditing())
	assert.Equal(t, "Buy oat milk", h.State.Input)
	assert.Equal(t, "Buy milk", h.State.Tasks[0].Text)
}

func TestAddWithoutRecordFails(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})
	srv.with(func() { srv.bareWrites = true })

	h.State = h.State.WithInput("Walk dog")
	drain(h, h.Add())

	assert.Equal(t, []api.TaskID{"1"}, taskIDs(h.State.Tasks), "no task without a server id")
	assert.Equal(t, "Walk dog", h.State.Input)
	require.NotNil(t, h.Screen.Alert)
	assert.Equal(t, state.CreateFailure, h.Screen.Alert.Kind)
	assert.ErrorIs(t, h.Screen.Alert, errEmptyResponse)
}

func TestUpdateWithoutRecordKeepsSentValues(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})
	srv.with(func() { srv.bareWrites = true })

	drain(h, h.ToggleAt(0))
	require.Len(t, h.State.Tasks, 1)
	assert.True(t, h.State.Tasks[0].Completed)

	drain(h, h.BeginEditAt(0))
	h.State = h.State.WithInput("Buy oat milk")
	drain(h, h.SaveEdit())

	assert.Equal(t, state.Task{ID: "1", Text: "Buy oat milk", Completed: true}, h.State.Tasks[0])
	assert.False(t, h.State.IsEditing())
	assert.Nil(t, h.Screen.Alert)
}

func TestCancelEditWithEsc(t *testing.T) {
	h, _ := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})

	drain(h, h.BeginEditAt(0))
	press(h, "esc")

	assert.False(t, h.State.IsEditing())
	assert.Empty(t, h.Screen.Input.Value())
}

func TestClearAll(t *testing.T) {
	h, srv := newTestHandler(t, Options{},
		api.Task{ID: "1", Title: "a"},
		api.Task{ID: "2", Title: "b"},
		api.Task{ID: "3", Title: "c"},
	)

	drain(h, h.ClearAll())

	assert.NotNil(t, h.State.Tasks)
	assert.Empty(t, h.State.Tasks)
	assert.Empty(t, srv.snapshot())
	assert.Equal(t, "Cleared 3 tasks", h.Screen.StatusMsg)
}

func TestClearAllPartialFailureKeepsLocalTasks(t *testing.T) {
	rec := &notify.Recorder{}
	h, srv := newTestHandler(t, Options{NotifyErrors: true, Notifier: rec},
		api.Task{ID: "1", Title: "a"},
		api.Task{ID: "2", Title: "b"},
		api.Task{ID: "3", Title: "c"},
	)
	srv.with(func() { srv.failDelete["2"] = true })

	drain(h, h.ClearAll())

	assert.Equal(t, []api.TaskID{"1", "2", "3"}, taskIDs(h.State.Tasks))
	require.NotNil(t, h.Screen.Alert)
	assert.Equal(t, state.BulkDeleteFailure, h.Screen.Alert.Kind)
	assert.Contains(t, h.Screen.Alert.Message(), "2 of 3")

	require.Len(t, rec.Sent, 1)
	assert.Equal(t, h.Screen.Alert.Message(), rec.Sent[0].Message)

	// Refresh resyncs with what the server actually kept.
	press(h, "enter", "tab", "r")
	assert.Equal(t, []api.TaskID{"2"}, taskIDs(h.State.Tasks))
}

func TestClearNeedsConfirmation(t *testing.T) {
	h, srv := newTestHandler(t, Options{ConfirmClear: true},
		api.Task{ID: "1", Title: "a"},
	)
	press(h, "tab")

	press(h, "C")
	assert.True(t, h.Screen.Confirming)
	press(h, "n")
	assert.False(t, h.Screen.Confirming)
	assert.Len(t, h.State.Tasks, 1)
	assert.Len(t, srv.snapshot(), 1)

	press(h, "C", "y")
	assert.Empty(t, h.State.Tasks)
}

func TestClearWithNoTasksDoesNothing(t *testing.T) {
	h, _ := newTestHandler(t, Options{ConfirmClear: true})
	assert.Nil(t, h.RequestClear())
	assert.False(t, h.Screen.Confirming)
}

func TestAlertBlocksKeys(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})
	srv.with(func() { srv.failUpdate = true })
	press(h, "tab")

	press(h, "x")
	require.NotNil(t, h.Screen.Alert)

	srv.with(func() { srv.failUpdate = false })
	press(h, "x")
	assert.False(t, h.State.Tasks[0].Completed, "keys other than dismiss are ignored")

	press(h, "enter")
	assert.Nil(t, h.Screen.Alert)
	press(h, "x")
	assert.True(t, h.State.Tasks[0].Completed)
}

func TestMutationsIgnoredWhileLoading(t *testing.T) {
	h, srv := newTestHandler(t, Options{}, api.Task{ID: "1", Title: "Buy milk"})
	h.State = h.State.BeginLoad().WithInput("New task")
	before := len(srv.requestLog())

	assert.Nil(t, h.Add())
	assert.Nil(t, h.ToggleAt(0))
	assert.Nil(t, h.DeleteAt(0))
	assert.Nil(t, h.ClearAll())
	assert.Nil(t, h.Load())
	assert.Len(t, srv.requestLog(), before)
}

func TestListKeysVimMode(t *testing.T) {
	h, srv := newTestHandler(t, Options{VimMode: true},
		api.Task{ID: "1", Title: "a"},
		api.Task{ID: "2", Title: "b"},
		api.Task{ID: "3", Title: "c"},
	)
	press(h, "tab")
	assert.Equal(t, state.FocusList, h.Screen.Focus)

	press(h, "j", "j")
	id, ok := h.Selected()
	require.True(t, ok)
	assert.Equal(t, api.TaskID("3"), id)

	press(h, "g", "g")
	id, _ = h.Selected()
	assert.Equal(t, api.TaskID("1"), id)

	press(h, "j", "d", "d")
	assert.Equal(t, []api.TaskID{"1", "3"}, taskIDs(h.State.Tasks))
	assert.Contains(t, srv.requestLog(), "DELETE /api/tasks/2")

	// Cursor stays on a surviving row.
	id, _ = h.Selected()
	assert.Equal(t, api.TaskID("3"), id)
}

func TestFilterKeys(t *testing.T) {
	h, _ := newTestHandler(t, Options{},
		api.Task{ID: "1", Title: "a", Completed: true},
		api.Task{ID: "2", Title: "b"},
	)
	press(h, "tab")

	press(h, "f")
	assert.Equal(t, state.FilterCompleted, h.State.Filter)
	assert.Equal(t, 1, h.List.Len())

	press(h, "3")
	assert.Equal(t, state.FilterIncomplete, h.State.Filter)
	press(h, "1")
	assert.Equal(t, state.FilterAll, h.State.Filter)
	assert.Equal(t, 2, h.List.Len())
}

func TestStaleRowActionResolvesByID(t *testing.T) {
	h, _ := newTestHandler(t, Options{},
		api.Task{ID: "1", Title: "a"},
		api.Task{ID: "2", Title: "b"},
	)

	// The row was at position 1 when emitted, but task 1 has since gone.
	h.State = h.State.Removed("1")
	drain(h, h.Update(components.TaskActionMsg{Action: components.RowToggle, Position: 1, ID: "2"}))
	task, _ := h.State.Find("2")
	assert.True(t, task.Completed)

	// An action for a task that is no longer visible is dropped.
	assert.Nil(t, h.Update(components.TaskActionMsg{Action: components.RowDelete, Position: 0, ID: "1"}))
}

func TestCopy(t *testing.T) {
	var copied string
	h, _ := newTestHandler(t, Options{Clipboard: func(s string) error {
		copied = s
		return nil
	}}, api.Task{ID: "1", Title: "Buy milk"})

	drain(h, h.CopyAt(0))
	assert.Equal(t, "Buy milk", copied)
	assert.Equal(t, "Copied to clipboard", h.Screen.StatusMsg)

	h, _ = newTestHandler(t, Options{Clipboard: func(string) error {
		return errors.New("no clipboard")
	}}, api.Task{ID: "1", Title: "Buy milk"})
	drain(h, h.CopyAt(0))
	assert.Contains(t, h.Screen.StatusMsg, "no clipboard")
	assert.Nil(t, h.Screen.Alert)
}

func TestQuit(t *testing.T) {
	h, _ := newTestHandler(t, Options{})
	cmd := h.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

package logic

import (
	"github.com/hy4ri/tasklist/internal/api"
	"github.com/hy4ri/tasklist/internal/tui/state"
)

// Result messages. Each remote command returns exactly one success message or
// a failureMsg, and results are always applied by task id.
type tasksLoadedMsg struct{ tasks []api.Task }
type taskCreatedMsg struct{ task api.Task }
type taskToggledMsg struct {
	id        api.TaskID
	completed bool
}
type taskDeletedMsg struct{ id api.TaskID }
type taskSavedMsg struct {
	id    api.TaskID
	title string
}
type tasksClearedMsg struct{ count int }
type failureMsg struct{ failure state.Failure }
type statusMsg struct{ msg string }

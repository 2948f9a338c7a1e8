package components

import "github.com/hy4ri/tasklist/internal/api"

// RowAction is a per-row control.
type RowAction int

const (
	RowToggle RowAction = iota
	RowEdit
	RowDelete
	RowCopy
)

func (a RowAction) String() string {
	switch a {
	case RowToggle:
		return "toggle"
	case RowEdit:
		return "edit"
	case RowDelete:
		return "delete"
	case RowCopy:
		return "copy"
	}
	return "unknown"
}

// TaskActionMsg is emitted when a row control fires. It carries the row's
// position in the filtered view and the task's id at the time of the event.
type TaskActionMsg struct {
	Action   RowAction
	Position int
	ID       api.TaskID
}

// CursorMovedMsg is emitted when the cursor lands on a different task.
type CursorMovedMsg struct {
	Position int
	ID       api.TaskID
}

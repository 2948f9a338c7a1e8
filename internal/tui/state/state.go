// Package state holds the task list state and the transitions that keep it
// consistent with the server.
//
// State is a value. Every transition returns a new State and never mutates
// the receiver's task slice, so callers can keep the previous value around.
package state

import (
	"slices"
	"strings"

	"github.com/hy4ri/tasklist/internal/api"
)

// State is the reconciled task state.
type State struct {
	Tasks      []Task
	Filter     Filter
	EditTarget *api.TaskID // nil when not editing
	Input      string
	Loading    bool
}

// New returns the initial state: no tasks, not loading.
func New(filter Filter) State {
	return State{
		Tasks:  []Task{},
		Filter: filter,
	}
}

// Visible returns the filtered view. It is recomputed on every call.
func (s State) Visible() []Task {
	return s.Filter.Apply(s.Tasks)
}

// Resolve maps a position in the filtered view to its task.
func (s State) Resolve(pos int) (Task, bool) {
	visible := s.Visible()
	if pos < 0 || pos >= len(visible) {
		return Task{}, false
	}
	return visible[pos], true
}

// Find looks a task up by id.
func (s State) Find(id api.TaskID) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.Tasks[i], true
}

func (s State) index(id api.TaskID) int {
	return slices.IndexFunc(s.Tasks, func(t Task) bool { return t.ID == id })
}

// IsEditing reports whether an edit session is open.
func (s State) IsEditing() bool {
	return s.EditTarget != nil
}

// SubmitLabel is the label of the form's submit control.
func (s State) SubmitLabel() string {
	if s.IsEditing() {
		return "Save"
	}
	return "Add"
}

// mapTasks copies the task slice, applying fn to the task with the given id.
func (s State) mapTasks(id api.TaskID, fn func(*Task)) []Task {
	out := slices.Clone(s.Tasks)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
		}
	}
	return out
}

// WithInput replaces the input buffer.
func (s State) WithInput(text string) State {
	s.Input = text
	return s
}

// WithFilter changes the filter. The edit session and input are kept.
func (s State) WithFilter(f Filter) State {
	s.Filter = f
	return s
}

// BeginLoad marks the load round trip as outstanding.
func (s State) BeginLoad() State {
	s.Loading = true
	return s
}

// Loaded replaces the task list wholesale with the server's list.
func (s State) Loaded(remote []api.Task) State {
	tasks := make([]Task, 0, len(remote))
	for _, t := range remote {
		tasks = append(tasks, FromRemote(t))
	}
	s.Tasks = tasks
	s.Loading = false
	return s
}

// LoadFailed ends the load and keeps the previous tasks.
func (s State) LoadFailed() State {
	s.Loading = false
	return s
}

// PlanAdd returns the create request for the current input, or false when
// the input is blank.
func (s State) PlanAdd() (api.CreateTaskRequest, bool) {
	if strings.TrimSpace(s.Input) == "" {
		return api.CreateTaskRequest{}, false
	}
	return api.CreateTaskRequest{Title: s.Input, Description: "", Completed: false}, true
}

// Added appends the server-confirmed task and clears the input.
func (s State) Added(remote api.Task) State {
	s.Tasks = append(slices.Clone(s.Tasks), FromRemote(remote))
	s.Input = ""
	return s
}

// PlanToggle resolves pos in the filtered view and returns the task and the
// completion value to send.
func (s State) PlanToggle(pos int) (Task, api.UpdateTaskRequest, bool) {
	task, ok := s.Resolve(pos)
	if !ok {
		return Task{}, api.UpdateTaskRequest{}, false
	}
	return task, api.UpdateTaskRequest{Completed: api.Bool(!task.Completed)}, true
}

// CompletionSet stores the server-confirmed completion flag on task id.
func (s State) CompletionSet(id api.TaskID, completed bool) State {
	s.Tasks = s.mapTasks(id, func(t *Task) { t.Completed = completed })
	return s
}

// PlanDelete resolves pos in the filtered view.
func (s State) PlanDelete(pos int) (Task, bool) {
	return s.Resolve(pos)
}

// Removed drops task id. An edit session on that task is closed.
func (s State) Removed(id api.TaskID) State {
	s.Tasks = slices.DeleteFunc(slices.Clone(s.Tasks), func(t Task) bool { return t.ID == id })
	if s.EditTarget != nil && *s.EditTarget == id {
		s.EditTarget = nil
		s.Input = ""
	}
	return s
}

// BeginEdit opens an edit session on the task at pos in the filtered view.
func (s State) BeginEdit(pos int) (State, bool) {
	task, ok := s.Resolve(pos)
	if !ok {
		return s, false
	}
	id := task.ID
	s.EditTarget = &id
	s.Input = task.Text
	return s, true
}

// CancelEdit closes the edit session without saving.
func (s State) CancelEdit() State {
	s.EditTarget = nil
	s.Input = ""
	return s
}

// PlanSaveEdit returns the update for the open edit session. It fails when the
// input is blank or the target no longer exists. The task's current completion
// flag is sent unchanged alongside the new text.
func (s State) PlanSaveEdit() (api.TaskID, api.UpdateTaskRequest, bool) {
	if s.EditTarget == nil || strings.TrimSpace(s.Input) == "" {
		return "", api.UpdateTaskRequest{}, false
	}
	task, ok := s.Find(*s.EditTarget)
	if !ok {
		return "", api.UpdateTaskRequest{}, false
	}
	return task.ID, api.UpdateTaskRequest{
		Title:       api.String(s.Input),
		Description: api.String(""),
		Completed:   api.Bool(task.Completed),
	}, true
}

// Saved stores the server-confirmed text on task id and closes the edit session.
func (s State) Saved(id api.TaskID, text string) State {
	s.Tasks = s.mapTasks(id, func(t *Task) { t.Text = text })
	s.EditTarget = nil
	s.Input = ""
	return s
}

// PlanClear returns the ids of every task, in list order.
func (s State) PlanClear() []api.TaskID {
	ids := make([]api.TaskID, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

// Cleared empties the task list after every delete succeeded.
func (s State) Cleared() State {
	s.Tasks = []Task{}
	if s.EditTarget != nil {
		s.EditTarget = nil
		s.Input = ""
	}
	return s
}

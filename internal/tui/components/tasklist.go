package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/tasklist/internal/api"
	"github.com/hy4ri/tasklist/internal/tui/state"
	"github.com/hy4ri/tasklist/internal/tui/styles"
)

// TaskListModel manages a scrollable list of tasks.
//
// The cursor follows a task id, not a row number: when the list is replaced
// the cursor stays on the same task if it is still visible.
type TaskListModel struct {
	tasks         []state.Task
	cursor        int
	cursorID      api.TaskID
	editing       *api.TaskID
	width, height int
	focused       bool
	vimMode       bool
	viewportReady bool
	viewport      viewport.Model
	title         string
	emptyMessage  string
	now           func() time.Time
}

var _ Focusable = (*TaskListModel)(nil)

// NewTaskList creates a new TaskListModel.
func NewTaskList(vimMode bool) *TaskListModel {
	return &TaskListModel{
		tasks:        []state.Task{},
		vimMode:      vimMode,
		title:        "Tasks",
		emptyMessage: "No tasks found",
		now:          time.Now,
	}
}

// Init implements Component.
func (t *TaskListModel) Init() tea.Cmd {
	return nil
}

// Update implements Component. Only mouse wheel scrolling is handled here;
// keys go through the controller's keymap.
func (t *TaskListModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.MouseMsg); ok && msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return t, t.moveCmd(-1)
		case tea.MouseButtonWheelDown:
			return t, t.moveCmd(1)
		}
	}
	return t, nil
}

func (t *TaskListModel) moveCmd(delta int) tea.Cmd {
	before := t.cursorID
	t.MoveCursor(delta)
	if t.cursorID == before {
		return nil
	}
	pos, id := t.cursor, t.cursorID
	return func() tea.Msg { return CursorMovedMsg{Position: pos, ID: id} }
}

// View implements Component.
func (t *TaskListModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(t.title))
	b.WriteString("\n")

	if len(t.tasks) == 0 {
		b.WriteString(styles.Subtitle.Render(t.emptyMessage))
		return b.String()
	}

	now := t.now()
	lines := make([]string, 0, len(t.tasks))
	for i, task := range t.tasks {
		lines = append(lines, RenderTaskRow(TaskRow{
			Task:     task,
			Position: i,
			Selected: i == t.cursor && t.focused,
			Editing:  t.editing != nil && *t.editing == task.ID,
			VimMode:  t.vimMode,
			Width:    t.width,
			Now:      now,
		}))
	}
	b.WriteString(t.renderScrollableLines(lines))

	return b.String()
}

// SetSize implements Component.
func (t *TaskListModel) SetSize(width, height int) {
	t.width = width
	t.height = height

	if !t.viewportReady {
		t.viewport = viewport.New(width, max(height-1, 1))
		t.viewport.Style = lipgloss.NewStyle()
		t.viewport.MouseWheelEnabled = false
		t.viewportReady = true
	} else {
		t.viewport.Width = width
		t.viewport.Height = max(height-1, 1) // title line
	}
}

// Focus sets focus on the task list.
func (t *TaskListModel) Focus() {
	t.focused = true
}

// Blur removes focus.
func (t *TaskListModel) Blur() {
	t.focused = false
}

// Focused returns focus state.
func (t *TaskListModel) Focused() bool {
	return t.focused
}

// SetTitle sets the title header.
func (t *TaskListModel) SetTitle(title string) {
	t.title = title
}

// SetEmptyMessage sets the message shown when no tasks are visible.
func (t *TaskListModel) SetEmptyMessage(msg string) {
	t.emptyMessage = msg
}

// SetEditing marks the task whose text is loaded in the input (nil for none).
func (t *TaskListModel) SetEditing(id *api.TaskID) {
	t.editing = id
}

// SetClock replaces the time source used for relative timestamps.
func (t *TaskListModel) SetClock(now func() time.Time) {
	t.now = now
}

// SetTasks replaces the visible tasks. The cursor stays on the task it was on
// when that task is still present; otherwise it keeps its row, clamped.
func (t *TaskListModel) SetTasks(tasks []state.Task) {
	t.tasks = tasks
	for i, task := range tasks {
		if task.ID == t.cursorID {
			t.cursor = i
			return
		}
	}
	t.setCursor(t.cursor)
}

// Len returns the number of visible rows.
func (t *TaskListModel) Len() int {
	return len(t.tasks)
}

// Cursor returns the cursor's position in the filtered view.
func (t *TaskListModel) Cursor() int {
	return t.cursor
}

// SelectedTask returns the task at the cursor.
func (t *TaskListModel) SelectedTask() (state.Task, bool) {
	if t.cursor >= 0 && t.cursor < len(t.tasks) {
		return t.tasks[t.cursor], true
	}
	return state.Task{}, false
}

// MoveCursor moves the cursor by delta, clamped to the list.
func (t *TaskListModel) MoveCursor(delta int) {
	t.setCursor(t.cursor + delta)
}

// MoveToTop moves the cursor to the first row.
func (t *TaskListModel) MoveToTop() {
	t.setCursor(0)
}

// MoveToBottom moves the cursor to the last row.
func (t *TaskListModel) MoveToBottom() {
	t.setCursor(len(t.tasks) - 1)
}

// PageSize is the half-page step for ctrl+d/ctrl+u.
func (t *TaskListModel) PageSize() int {
	if t.viewportReady && t.viewport.Height > 1 {
		return t.viewport.Height / 2
	}
	return 10
}

func (t *TaskListModel) setCursor(pos int) {
	if pos >= len(t.tasks) {
		pos = len(t.tasks) - 1
	}
	if pos < 0 {
		pos = 0
	}
	t.cursor = pos
	t.cursorID = ""
	if pos < len(t.tasks) {
		t.cursorID = t.tasks[pos].ID
	}
}

// Action returns a command emitting a row action for the task at the cursor,
// or nil when the list is empty.
func (t *TaskListModel) Action(action RowAction) tea.Cmd {
	task, ok := t.SelectedTask()
	if !ok {
		return nil
	}
	msg := TaskActionMsg{Action: action, Position: t.cursor, ID: task.ID}
	return func() tea.Msg { return msg }
}

// renderScrollableLines renders lines with viewport scrolling, keeping the
// cursor row visible.
func (t *TaskListModel) renderScrollableLines(lines []string) string {
	content := strings.Join(lines, "\n")
	if !t.viewportReady {
		return content
	}

	t.viewport.SetContent(content)
	t.syncViewportToCursor(t.cursor)
	return t.viewport.View()
}

// syncViewportToCursor ensures the viewport shows the cursor line.
func (t *TaskListModel) syncViewportToCursor(cursorLine int) {
	vpHeight := t.viewport.Height
	if vpHeight <= 0 {
		return
	}

	currentTop := t.viewport.YOffset
	currentBottom := currentTop + vpHeight - 1

	if cursorLine < currentTop {
		t.viewport.SetYOffset(cursorLine)
	} else if cursorLine > currentBottom {
		t.viewport.SetYOffset(cursorLine - vpHeight + 1)
	}
}

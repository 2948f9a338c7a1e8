package logic

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/tasklist/internal/api"
	"github.com/hy4ri/tasklist/internal/tui/state"
)

// TaskClient is the remote task service used by the controller.
type TaskClient interface {
	ListTasks(ctx context.Context) ([]api.Task, error)
	CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error)
	UpdateTask(ctx context.Context, id api.TaskID, req api.UpdateTaskRequest) (*api.Task, error)
	DeleteTask(ctx context.Context, id api.TaskID) (*api.DeleteResponse, error)
	DeleteTasks(ctx context.Context, ids []api.TaskID) error
}

var errEmptyResponse = errors.New("empty response from server")

func fail(kind state.FailureKind, err error) tea.Msg {
	return failureMsg{failure: state.Failure{Kind: kind, Err: err}}
}

// The command constructors below run inside tea.Cmd goroutines. They only
// capture values and never touch handler state.

func loadCmd(ctx context.Context, client TaskClient) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.ListTasks(ctx)
		if err != nil {
			return fail(state.LoadFailure, err)
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func createCmd(ctx context.Context, client TaskClient, req api.CreateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		task, err := client.CreateTask(ctx, req)
		if err != nil {
			return fail(state.CreateFailure, err)
		}
		if task == nil || task.ID == "" {
			return fail(state.CreateFailure, errEmptyResponse)
		}
		return taskCreatedMsg{task: *task}
	}
}

func toggleCmd(ctx context.Context, client TaskClient, id api.TaskID, req api.UpdateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		task, err := client.UpdateTask(ctx, id, req)
		if err != nil {
			return fail(state.UpdateFailure, err)
		}
		// Without a record the server accepted the request as sent.
		completed := *req.Completed
		if task != nil && task.ID != "" {
			completed = task.Completed
		}
		return taskToggledMsg{id: id, completed: completed}
	}
}

func saveCmd(ctx context.Context, client TaskClient, id api.TaskID, req api.UpdateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		task, err := client.UpdateTask(ctx, id, req)
		if err != nil {
			return fail(state.UpdateFailure, err)
		}
		title := *req.Title
		if task != nil && task.ID != "" {
			title = task.Title
		}
		return taskSavedMsg{id: id, title: title}
	}
}

func deleteCmd(ctx context.Context, client TaskClient, id api.TaskID) tea.Cmd {
	return func() tea.Msg {
		if _, err := client.DeleteTask(ctx, id); err != nil {
			return fail(state.DeleteFailure, err)
		}
		return taskDeletedMsg{id: id}
	}
}

func clearCmd(ctx context.Context, client TaskClient, ids []api.TaskID) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteTasks(ctx, ids); err != nil {
			return fail(state.BulkDeleteFailure, err)
		}
		return tasksClearedMsg{count: len(ids)}
	}
}

func copyCmd(copyText func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if err := copyText(text); err != nil {
			return statusMsg{msg: fmt.Sprintf("Copy failed: %v", err)}
		}
		return statusMsg{msg: "Copied to clipboard"}
	}
}

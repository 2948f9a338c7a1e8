package api

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"
)

func taskPath(id TaskID) string {
	return "/tasks/" + url.PathEscape(string(id))
}

// ListTasks returns every task the server holds, in server order.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	tasks := make([]Task, 0)
	if err := c.Get(ctx, "/tasks", &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a new task. The server assigns its ID.
// It returns nil, nil when the server replied without a task record.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.Post(ctx, "/tasks", req, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return record(task), nil
}

// UpdateTask partially updates a task and returns the server's copy, or nil
// when the server replied without a task record (for example a 204).
func (c *Client) UpdateTask(ctx context.Context, id TaskID, req UpdateTaskRequest) (*Task, error) {
	var task Task
	if err := c.Put(ctx, taskPath(id), req, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return record(task), nil
}

// record treats a body without an id as no record at all.
func record(task Task) *Task {
	if task.ID == "" {
		return nil
	}
	return &task
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id TaskID) (*DeleteResponse, error) {
	var ack DeleteResponse
	if err := c.Delete(ctx, taskPath(id), &ack); err != nil {
		return nil, fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return &ack, nil
}

// DeleteTasks issues one delete per id, all at once, and waits for every one
// of them. A failed delete does not cancel the others. When any delete fails
// the returned error is a *BulkDeleteError.
func (c *Client) DeleteTasks(ctx context.Context, ids []TaskID) error {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		deleted []TaskID
		failed  = make(map[TaskID]error)
	)

	for _, id := range ids {
		g.Go(func() error {
			_, err := c.DeleteTask(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[id] = err
				return err
			}
			deleted = append(deleted, id)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return &BulkDeleteError{Deleted: deleted, Failed: failed}
	}
	return nil
}

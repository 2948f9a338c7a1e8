package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hy4ri/tasklist/internal/api"
	"github.com/hy4ri/tasklist/internal/tui/state"
	"github.com/hy4ri/tasklist/internal/tui/styles"
	"github.com/hy4ri/tasklist/internal/tui/utils"
	"github.com/spf13/cobra"
)

// taskService is the part of the API client the headless commands use.
type taskService interface {
	ListTasks(ctx context.Context) ([]api.Task, error)
	CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error)
	UpdateTask(ctx context.Context, id api.TaskID, req api.UpdateTaskRequest) (*api.Task, error)
	DeleteTask(ctx context.Context, id api.TaskID) (*api.DeleteResponse, error)
	DeleteTasks(ctx context.Context, ids []api.TaskID) error
}

// withClient loads config, builds the client and runs fn with it. Errors
// from fn are logged before they reach the caller.
func withClient(cmd *cobra.Command, opts *globalOptions, fn func(*api.Client) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, closer := openLogger(cfg, "cli", cmd.ErrOrStderr())
	defer closer.Close()

	client, err := newClient(cfg)
	if err != nil {
		logger.Error("failed to build client", "err", err)
		return err
	}

	if err := fn(client); err != nil {
		logger.Error("command failed", "command", cmd.Name(), "base_url", client.BaseURL(), "err", err)
		return err
	}
	logger.Debug("command done", "command", cmd.Name())
	return nil
}

func newListCmd(opts *globalOptions) *cobra.Command {
	var filterName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := state.ParseFilter(filterName)
			if err != nil {
				return err
			}
			return withClient(cmd, opts, func(c *api.Client) error {
				return listTasks(cmd.Context(), c, cmd.OutOrStdout(), filter, time.Now())
			})
		},
	}
	cmd.Flags().StringVarP(&filterName, "filter", "f", "all", "all, completed or incomplete")
	return cmd
}

func listTasks(ctx context.Context, svc taskService, out io.Writer, filter state.Filter, now time.Time) error {
	remote, err := svc.ListTasks(ctx)
	if err != nil {
		return err
	}

	tasks := state.New(filter).Loaded(remote).Visible()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}

	for _, t := range tasks {
		fmt.Fprintln(out, formatTask(t, now))
	}
	return nil
}

func formatTask(t state.Task, now time.Time) string {
	box := styles.CheckboxUnchecked
	if t.Completed {
		box = styles.CheckboxChecked
	}
	line := fmt.Sprintf("%s %-6s %s", box, t.ID, t.Text)
	if rel := utils.RelativeTime(t.CreatedAt, now); rel != "" {
		line += "  (" + rel + ")"
	}
	return line
}

func newAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(c *api.Client) error {
				return addTask(cmd.Context(), c, cmd.OutOrStdout(), strings.Join(args, " "))
			})
		},
	}
}

func addTask(ctx context.Context, svc taskService, out io.Writer, text string) error {
	req, ok := state.New(state.FilterAll).WithInput(text).PlanAdd()
	if !ok {
		return errors.New("task text must not be empty")
	}
	task, err := svc.CreateTask(ctx, req)
	if err != nil {
		return err
	}
	if task == nil {
		return errors.New("failed to create task: empty response from server")
	}
	fmt.Fprintf(out, "Added %s: %s\n", task.ID, task.Title)
	return nil
}

func newToggleCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed, or reopen it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(c *api.Client) error {
				return toggleTask(cmd.Context(), c, cmd.OutOrStdout(), api.TaskID(args[0]))
			})
		},
	}
}

// findTask fetches the list and looks id up, since the server has no
// single-task endpoint.
func findTask(ctx context.Context, svc taskService, id api.TaskID) (state.State, error) {
	remote, err := svc.ListTasks(ctx)
	if err != nil {
		return state.State{}, err
	}
	s := state.New(state.FilterAll).Loaded(remote)
	if _, ok := s.Find(id); !ok {
		return state.State{}, fmt.Errorf("task %s not found", id)
	}
	return s, nil
}

func toggleTask(ctx context.Context, svc taskService, out io.Writer, id api.TaskID) error {
	s, err := findTask(ctx, svc, id)
	if err != nil {
		return err
	}
	task, _ := s.Find(id)
	updated, err := svc.UpdateTask(ctx, id, api.UpdateTaskRequest{Completed: api.Bool(!task.Completed)})
	if err != nil {
		return err
	}

	// Without a record the server accepted the request as sent.
	completed := !task.Completed
	if updated != nil {
		completed, task.Text = updated.Completed, updated.Title
	}
	if completed {
		fmt.Fprintf(out, "Completed %s: %s\n", id, task.Text)
	} else {
		fmt.Fprintf(out, "Reopened %s: %s\n", id, task.Text)
	}
	return nil
}

func newEditCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Change a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(c *api.Client) error {
				return editTask(cmd.Context(), c, cmd.OutOrStdout(), api.TaskID(args[0]), strings.Join(args[1:], " "))
			})
		},
	}
}

func editTask(ctx context.Context, svc taskService, out io.Writer, id api.TaskID, text string) error {
	s, err := findTask(ctx, svc, id)
	if err != nil {
		return err
	}

	// Same rules as saving an edit in the TUI.
	s.EditTarget = &id
	_, req, ok := s.WithInput(text).PlanSaveEdit()
	if !ok {
		return errors.New("task text must not be empty")
	}

	updated, err := svc.UpdateTask(ctx, id, req)
	if err != nil {
		return err
	}
	if updated != nil {
		text = updated.Title
	}
	fmt.Fprintf(out, "Saved %s: %s\n", id, text)
	return nil
}

func newRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(c *api.Client) error {
				ack, err := c.DeleteTask(cmd.Context(), api.TaskID(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ack.Message)
				return nil
			})
		},
	}
}

func newClearCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(c *api.Client) error {
				return clearTasks(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout(), yes)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func clearTasks(ctx context.Context, svc taskService, in io.Reader, out io.Writer, yes bool) error {
	remote, err := svc.ListTasks(ctx)
	if err != nil {
		return err
	}
	ids := state.New(state.FilterAll).Loaded(remote).PlanClear()
	if len(ids) == 0 {
		fmt.Fprintln(out, "No tasks to clear.")
		return nil
	}

	if !yes {
		fmt.Fprintf(out, "Delete all %d tasks? [y/N]: ", len(ids))
		response, _ := bufio.NewReader(in).ReadString('\n')
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := svc.DeleteTasks(ctx, ids); err != nil {
		var bulk *api.BulkDeleteError
		if errors.As(err, &bulk) {
			return fmt.Errorf("%w (%d deleted before the failure)", err, len(bulk.Deleted))
		}
		return err
	}
	fmt.Fprintf(out, "Cleared %d tasks.\n", len(ids))
	return nil
}

func newHealthCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the task server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(c *api.Client) error {
				status, err := c.Health(cmd.Context())
				if err != nil {
					return fmt.Errorf("server at %s is not healthy: %w", c.BaseURL(), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", status.Status, status.Message)
				return nil
			})
		},
	}
}

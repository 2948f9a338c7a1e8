package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/tasklist/internal/notify"
	"github.com/hy4ri/tasklist/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive TUI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

// runTUI starts the main TUI application.
func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, closer := openLogger(cfg, "tui", cmd.ErrOrStderr())
	defer closer.Close()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.UI.NotifyErrors {
		notifier = notify.Desktop{AppName: "tasklist"}
	}

	app, err := tui.NewApp(cmd.Context(), client, cfg, logger, notifier)
	if err != nil {
		return err
	}

	logger.Info("starting", "base_url", client.BaseURL())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

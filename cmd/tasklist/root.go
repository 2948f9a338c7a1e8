package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hy4ri/tasklist/internal/api"
	"github.com/hy4ri/tasklist/internal/config"
	"github.com/hy4ri/tasklist/internal/logging"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	baseURL    string
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "tasklist",
		Short: "tasklist - a terminal client for a to-do list server",
		Long: `tasklist talks to a to-do list REST server. Run it without a command
for the interactive TUI, or use the commands below for scripting.

Examples:
  # Start the interactive TUI
  tasklist

  # List open tasks
  tasklist list --filter incomplete

  # Use a different server
  tasklist --base-url http://tasks.example.com/api list`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "task server base URL (overrides config)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/tasklist/config.yaml)")

	root.AddCommand(
		newTUICmd(opts),
		newListCmd(opts),
		newAddCmd(opts),
		newToggleCmd(opts),
		newEditCmd(opts),
		newRemoveCmd(opts),
		newClearCmd(opts),
		newHealthCmd(opts),
		newInitCmd(opts),
		newTokenCmd(),
		newVersionCmd(),
	)

	return root
}

// resolveConfigPath returns the --config path or the default location.
func (o *globalOptions) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.ConfigPath()
}

// loadConfig reads the config file and applies the --base-url override.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	path, err := o.resolveConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.baseURL != "" {
		cfg.API.BaseURL = o.baseURL
	}
	return cfg, nil
}

// newClient builds the API client from cfg, picking up a stored token.
func newClient(cfg *config.Config) (*api.Client, error) {
	token, err := config.ResolveToken(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	return api.NewClient(cfg.API.BaseURL,
		api.WithToken(token),
		api.WithTimeout(cfg.API.Timeout),
	), nil
}

// openLogger opens the configured log file. Logging problems are never fatal:
// the returned logger discards output when the file cannot be opened.
func openLogger(cfg *config.Config, component string, stderr io.Writer) (*slog.Logger, io.Closer) {
	path, err := cfg.LogPath()
	if err == nil {
		var logger *slog.Logger
		var closer io.Closer
		logger, closer, err = logging.OpenFile(path, cfg.Log.Level, component)
		if err == nil {
			return logger, closer
		}
	}
	fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	return logging.Discard(), io.NopCloser(nil)
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0700)
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/hy4ri/tasklist/internal/api"
	"github.com/spf13/cobra"
)

var configTemplate = template.Must(template.New("config").Parse(`# tasklist configuration

api:
  # Base URL of the task server. TASKLIST_BASE_URL overrides it.
  base_url: "{{.BaseURL}}"
  # Request timeout.
  timeout: {{.Timeout}}
  # Bearer token, if the server wants one. Prefer 'tasklist token set',
  # which keeps it in the system keyring.
  # token: ""

ui:
  # Vim-style keys: dd deletes, yy copies, gg goes to the top (default: true)
  vim_mode: true
  # Filter shown at startup: all, completed or incomplete
  default_filter: all
  # Ask before deleting every task
  confirm_clear: true
  # Send a desktop notification when a request fails
  notify_errors: false

log:
  # Defaults to ~/.local/share/tasklist/tasklist.log
  # file: ""
  level: info
`))

func newInitCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a template config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createConfigTemplate(cmd, opts, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate(cmd *cobra.Command, opts *globalOptions, force bool) error {
	out := cmd.OutOrStdout()

	path, err := opts.resolveConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "Config file already exists: %s\n", path)
		fmt.Fprint(out, "Overwrite? [y/N]: ")

		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	baseURL := api.DefaultBaseURL
	if opts.baseURL != "" {
		baseURL = opts.baseURL
	}

	var b strings.Builder
	if err := configTemplate.Execute(&b, struct {
		BaseURL string
		Timeout string
	}{baseURL, api.DefaultTimeout.String()}); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Config file created: %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Check base_url points at your task server")
	fmt.Fprintln(out, "  2. Run 'tasklist health' to test the connection")
	fmt.Fprintln(out, "  3. Run 'tasklist' to start")
	return nil
}

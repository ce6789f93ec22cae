// Package cli provides the command-line interface for tasks-timeline.
package cli

import (
	"fmt"

	"github.com/runoshun/tasks-timeline/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupTasks = "tasks"
	groupSetup = "setup"
)

// VaultFlag is the persistent flag selecting the vault directory.
// main reads it before the container is built.
const VaultFlag = "vault"

// NewRootCommand creates the root command for tasks-timeline.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "timeline",
		Short: "Markdown task timeline",
		Long: `tasks-timeline reads the task list items of a markdown vault,
enriches them with dates, tags, links and priorities, classifies
their status against today and prints the result.

Run it inside the vault or point it at one with --vault.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The template must work even when config files are broken
			if cmd.Name() == "template" {
				return nil
			}

			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	root.PersistentFlags().StringP(VaultFlag, "C", ".", "Vault directory")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupTasks, Title: "Task Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTasks

	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupTasks

	parseCmd := newParseCommand(c)
	parseCmd.GroupID = groupTasks

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupSetup

	root.AddCommand(
		listCmd,
		watchCmd,
		parseCmd,
		configCmd,
		logsCmd,
	)

	return root
}

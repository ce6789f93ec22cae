package cli

import (
	"fmt"

	"github.com/runoshun/tasks-timeline/internal/app"
	"github.com/runoshun/tasks-timeline/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Level string
		Lines int
	}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the application log",
		Long: `Show the application log, which records per-file warnings such as
unparseable dates and dropped records.

Examples:
  # Last 20 warnings
  timeline logs --level warn -n 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowLogsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowLogsInput{
				Level: opts.Level,
				Lines: opts.Lines,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Level, "level", "", "Show only entries of this level (debug, info, warn, error)")
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 0, "Show only the last N lines")

	return cmd
}

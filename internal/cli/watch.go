package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/tasks-timeline/internal/app"
	"github.com/runoshun/tasks-timeline/internal/infra/vault"
	"github.com/runoshun/tasks-timeline/internal/usecase"
	"github.com/spf13/cobra"
)

// newWatchCommand creates the watch command.
func newWatchCommand(c *app.Container) *cobra.Command {
	var flags listFlags
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "List tasks again whenever the vault changes",
		Long: `Print the task list, then print it again after every change to a
markdown file in the vault. Accepts the same flags as list.

Changes arriving while a list is being built are collapsed into one rerun.
Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, input, err := newListUseCase(cmd, c, &flags)
			if err != nil {
				return err
			}

			uc, err := c.WatchTasksUseCase(list, debounce)
			if err != nil {
				return err
			}

			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
			// OnError can fire while a result is being printed.
			var mu sync.Mutex
			return uc.Execute(cmd.Context(), usecase.WatchTasksInput{
				List: input,
				OnResult: func(out *usecase.ListTasksOutput) {
					mu.Lock()
					defer mu.Unlock()
					if flags.format == formatTable {
						_, _ = fmt.Fprintf(stdout, "== %s  %d tasks ==\n", c.Clock.Now().Format("15:04:05"), len(out.Tasks))
					}
					printWarnings(stderr, out.Warnings)
					if err := printTasks(stdout, flags.format, out.Tasks); err != nil {
						_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
					}
				},
				OnError: func(err error) {
					mu.Lock()
					defer mu.Unlock()
					_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
				},
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", vault.DefaultDebounce, "Wait this long for changes to settle")

	return cmd
}

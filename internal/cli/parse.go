package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/tasks-timeline/internal/app"
	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/usecase"
	"github.com/spf13/cobra"
)

// newParseCommand creates the parse command.
func newParseCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Path   string
		Format string
	}

	cmd := &cobra.Command{
		Use:   "parse [--] [LINE...]",
		Short: "Parse task lines without reading the vault",
		Long: `Run each line through the enrichment pipeline and print the result.

Task lines start with "- ", which looks like a flag, so put them after "--".
Without arguments, lines are read from stdin and blank lines are skipped.

--path sets the file the lines pretend to come from, which matters for
daily note dates.

Examples:
  timeline parse -- "- [ ] Pay rent 📅 2024-02-01 #home"
  timeline parse --path daily/2024-01-05.md -- "- [ ] Standup"
  grep -h -- "- \[ \]" notes/*.md | timeline parse -o table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != formatJSON && opts.Format != formatYAML && opts.Format != formatTable {
				return fmt.Errorf("unknown format %q (want table, json or yaml)", opts.Format)
			}

			lines := args
			if len(lines) == 0 {
				var err error
				if lines, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
				if len(lines) == 0 {
					return errors.New("parse: no lines given")
				}
			}

			pipeline, err := c.Pipeline(usecase.PipelineOptionsFromConfig(c.AppConfig.Pipeline))
			if err != nil {
				return err
			}
			uc := c.ParseLineUseCase(pipeline)

			tasks := make([]*domain.Task, 0, len(lines))
			for _, line := range lines {
				out, err := uc.Execute(cmd.Context(), usecase.ParseLineInput{
					Line: line,
					Path: opts.Path,
				})
				if err != nil {
					return fmt.Errorf("%q: %w", line, err)
				}
				tasks = append(tasks, out.Task)
			}

			return printTasks(cmd.OutOrStdout(), opts.Format, tasks)
		},
	}

	cmd.Flags().StringVar(&opts.Path, "path", "", "File path the lines belong to")
	cmd.Flags().StringVarP(&opts.Format, "format", "o", formatJSON, "Output format: table, json, yaml")

	return cmd
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}

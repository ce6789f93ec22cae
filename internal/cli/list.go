package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"
	"github.com/runoshun/tasks-timeline/internal/app"
	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/usecase"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// maxTextWidth is the display width of the TEXT column in table output.
const maxTextWidth = 72

// listFlags holds the flags shared by list and watch.
type listFlags struct {
	format          string
	sort            string
	on              string
	from            string
	to              string
	dailyNoteFormat string
	tags            []string
	excludeTags     []string
	excludePaths    []string
	statuses        []string
	year            int
	all             bool
	forward         bool
	noLinks         bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "o", formatTable, "Output format: table, json, yaml")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort keys, e.g. \"order,-due\" (default from config)")
	cmd.Flags().StringVar(&f.on, "on", "", "Show tasks with a date on this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.from, "from", "", "Show tasks with a date after this day")
	cmd.Flags().StringVar(&f.to, "to", "", "Show tasks with a date before this day")
	cmd.Flags().IntVar(&f.year, "year", 0, "Show tasks with a date in this year")
	cmd.Flags().StringArrayVar(&f.tags, "tag", nil, "Show only tasks with this tag (repeatable)")
	cmd.Flags().StringArrayVar(&f.excludeTags, "exclude-tag", nil, "Hide tasks with this tag (repeatable)")
	cmd.Flags().StringArrayVar(&f.excludePaths, "exclude-path", nil, "Hide tasks under this path (repeatable)")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "Show only these statuses, e.g. overdue,due")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "Include done and cancelled tasks")
	cmd.Flags().BoolVar(&f.forward, "forward", false, "Carry unplanned and overdue tasks onto today")
	cmd.Flags().BoolVar(&f.noLinks, "no-links", false, "Skip link extraction")
	cmd.Flags().StringVar(&f.dailyNoteFormat, "daily-note-format", "", "Daily note file name pattern, e.g. YYYY-MM-DD")
}

// pipelineOptions overlays the pipeline flags set on cmd onto the config.
func (f *listFlags) pipelineOptions(cmd *cobra.Command, cfg *domain.Config) usecase.PipelineOptions {
	opts := usecase.PipelineOptionsFromConfig(cfg.Pipeline)
	if cmd.Flags().Changed("forward") {
		opts.Forward = f.forward
	}
	if f.noLinks {
		opts.Links = false
	}
	if f.dailyNoteFormat != "" {
		opts.DailyNoteFormat = f.dailyNoteFormat
	}
	return opts
}

// input overlays the filter and sort flags onto the config.
func (f *listFlags) input(cfg *domain.Config) (usecase.ListTasksInput, error) {
	filter := usecase.FilterFromConfig(cfg.Filter)
	filter.IncludeTags = append(filter.IncludeTags, f.tags...)
	filter.ExcludeTags = append(filter.ExcludeTags, f.excludeTags...)
	filter.ExcludePaths = append(filter.ExcludePaths, f.excludePaths...)
	filter.Year = f.year
	if f.all {
		filter.IncludeDone = true
	}

	for _, s := range f.statuses {
		status, err := domain.ParseStatus(strings.TrimSpace(s))
		if err != nil {
			return usecase.ListTasksInput{}, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	var err error
	if filter.On, err = parseDateFlag("on", f.on); err != nil {
		return usecase.ListTasksInput{}, err
	}
	if filter.From, err = parseDateFlag("from", f.from); err != nil {
		return usecase.ListTasksInput{}, err
	}
	if filter.To, err = parseDateFlag("to", f.to); err != nil {
		return usecase.ListTasksInput{}, err
	}

	sortBy := cfg.Sort.By
	if f.sort != "" {
		sortBy = f.sort
	}
	return usecase.ListTasksInput{Sort: sortBy, Filter: filter}, nil
}

func (f *listFlags) validate() error {
	switch f.format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", f.format)
	}
}

func parseDateFlag(name, value string) (*domain.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

// newListUseCase builds the pipeline and list use case for the flags.
func newListUseCase(cmd *cobra.Command, c *app.Container, f *listFlags) (*usecase.ListTasks, usecase.ListTasksInput, error) {
	if err := f.validate(); err != nil {
		return nil, usecase.ListTasksInput{}, err
	}
	input, err := f.input(c.AppConfig)
	if err != nil {
		return nil, usecase.ListTasksInput{}, err
	}
	pipeline, err := c.Pipeline(f.pipelineOptions(cmd, c.AppConfig))
	if err != nil {
		return nil, usecase.ListTasksInput{}, err
	}
	return c.ListTasksUseCase(pipeline), input, nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Harvest every task in the vault, enrich and classify it, and print it.

By default, done and cancelled tasks are hidden.
Use --all to include them, or --status to pick statuses explicitly.

Sort keys: order, status, priority, due, scheduled, start, completion,
created, path, line, text. Prefix a key with "-" for descending order.

Examples:
  # Tasks overdue or due today
  timeline list --status overdue,due

  # Everything tagged #work this year, as JSON
  timeline list --tag work --year 2024 --all -o json

  # Sort by priority, then latest due date first
  timeline list --sort priority,-due`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, input, err := newListUseCase(cmd, c, &flags)
			if err != nil {
				return err
			}

			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			printWarnings(cmd.ErrOrStderr(), out.Warnings)
			return printTasks(cmd.OutOrStdout(), flags.format, out.Tasks)
		},
	}

	flags.register(cmd)

	return cmd
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", msg)
	}
}

// printTasks writes tasks in the given format.
func printTasks(w io.Writer, format string, tasks []*domain.Task) error {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		printTaskTable(w, tasks)
		return nil
	}
}

// printTaskTable prints tasks as aligned columns.
func printTaskTable(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "STATUS\tPRI\tDATE\tLOCATION\tTEXT")

	// Rows
	for _, task := range tasks {
		pri := string(task.Priority)
		if task.Priority == domain.PriorityNone || pri == "" {
			pri = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s:%d\t%s\n",
			task.Status.Display(),
			pri,
			displayDate(task),
			task.Path,
			task.Line,
			runewidth.Truncate(task.Visual, maxTextWidth, "…"),
		)
	}
}

// displayDate returns the date that best explains the status of t.
func displayDate(t *domain.Task) string {
	for _, d := range []*domain.Date{t.Completion, t.Due, t.Scheduled, t.Start, t.Created} {
		if d != nil {
			return d.String()
		}
	}
	return "-"
}

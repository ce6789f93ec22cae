package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/tasks-timeline/internal/domain"
)

// ShowLogsInput contains the parameters for showing the application log.
type ShowLogsInput struct {
	Level string // Keep only lines of this level, e.g. "warn" (empty = all)
	Lines int    // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the result of showing the application log.
type ShowLogsOutput struct {
	LogPath string // Path to the log file
	Content string // Log file content
}

// ShowLogs is the use case for viewing the application log.
type ShowLogs struct {
	logPath string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(logPath string) *ShowLogs {
	return &ShowLogs{logPath: logPath}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	content, err := os.ReadFile(uc.logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", uc.logPath, domain.ErrNoLogFile)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if in.Level != "" {
		tag := "[" + strings.ToUpper(in.Level) + "]"
		kept := lines[:0]
		for _, line := range lines {
			if strings.Contains(line, tag) {
				kept = append(kept, line)
			}
		}
		lines = kept
	}

	// If lines is specified, get only the last N lines
	if in.Lines > 0 && len(lines) > in.Lines {
		lines = lines[len(lines)-in.Lines:]
	}

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}

	return &ShowLogsOutput{
		LogPath: uc.logPath,
		Content: result,
	}, nil
}

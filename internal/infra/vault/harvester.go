// Package vault harvests task records from a directory of markdown notes.
package vault

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/parser"
	"gopkg.in/yaml.v3"
)

// Ensure Harvester implements domain.TaskSource.
var _ domain.TaskSource = (*Harvester)(nil)

// Harvester walks a vault and parses every task list item it finds.
type Harvester struct {
	logger     domain.Logger
	root       string
	ignoreDirs []string
}

// NewHarvester creates a Harvester rooted at root.
// Directories whose name is in ignoreDirs are skipped, as are dot directories.
func NewHarvester(root string, ignoreDirs []string, logger domain.Logger) *Harvester {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Harvester{
		root:       root,
		ignoreDirs: slices.Clone(ignoreDirs),
		logger:     logger,
	}
}

// Root returns the vault directory.
func (h *Harvester) Root() string {
	return h.root
}

// Harvest returns the task records of every markdown file, ordered by path and line.
// Unreadable files are logged and skipped.
func (h *Harvester) Harvest(ctx context.Context) ([]*domain.Task, error) {
	files, err := h.Files(ctx)
	if err != nil {
		return nil, err
	}

	var tasks []*domain.Task
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(filepath.Join(h.root, filepath.FromSlash(rel)))
		if err != nil {
			h.logger.Warn(rel, "harvest", fmt.Sprintf("read failed: %v", err))
			continue
		}
		fileTasks, err := ParseFile(rel, content)
		if err != nil {
			// Malformed front matter only loses the front matter.
			h.logger.Warn(rel, "harvest", err.Error())
		}
		tasks = append(tasks, fileTasks...)
	}
	h.logger.Debug("global", "harvest", fmt.Sprintf("%d tasks from %d files", len(tasks), len(files)))
	return tasks, nil
}

// Files returns the vault-relative, slash-separated paths of all markdown files, sorted.
func (h *Harvester) Files(ctx context.Context) ([]string, error) {
	info, err := os.Stat(h.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", h.root, domain.ErrVaultNotFound)
	}

	var files []string
	err = filepath.WalkDir(h.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == h.root {
				return walkErr
			}
			h.logger.Warn("global", "harvest", fmt.Sprintf("walk %s: %v", path, walkErr))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != h.root && h.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !domain.IsMarkdownPath(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(h.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

func (h *Harvester) skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(h.ignoreDirs, name)
}

// listItem is an open list item on the nesting stack.
type listItem struct {
	task  *domain.Task // nil for plain list items
	depth int
	line  int
}

// ParseFile extracts the task records of one markdown file.
// Front matter is attached to every record. A front matter error is
// returned together with the tasks parsed without it.
func ParseFile(path string, content []byte) ([]*domain.Task, error) {
	frontMatter, bodyStart, fmErr := parseFrontMatter(content)

	var (
		tasks     []*domain.Task
		stack     []listItem
		listStart int
		fence     string
	)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo <= bodyStart {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if marker := fenceMarker(trimmed); marker != "" {
			fence = marker
			continue
		}
		if trimmed == "" {
			continue
		}

		depth, ok := parser.ListItemDepth(line)
		if !ok {
			// Unindented prose ends the list; indented text continues an item.
			if line[0] != ' ' && line[0] != '\t' {
				stack = stack[:0]
				listStart = 0
			}
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if listStart == 0 {
			listStart = lineNo
		}

		item := listItem{depth: depth, line: lineNo}
		if tl, err := parser.ParseTaskLine(line); err == nil {
			task := tl.Task(path, lineNo)
			task.List = listStart
			if len(frontMatter) > 0 {
				task.FontMatter = frontMatter
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				p := parent.line
				task.Parent = &p
				if parent.task != nil {
					parent.task.Children = append(parent.task.Children, lineNo)
				}
			}
			item.task = task
			tasks = append(tasks, task)
		}
		stack = append(stack, item)
	}
	if err := scanner.Err(); err != nil {
		return tasks, fmt.Errorf("scan: %w", err)
	}

	return tasks, fmErr
}

func fenceMarker(trimmed string) string {
	for _, marker := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, marker) {
			return marker
		}
	}
	return ""
}

// parseFrontMatter reads a leading "---" delimited YAML block.
// It returns the values as strings and the number of lines the block spans.
func parseFrontMatter(content []byte) (map[string]string, int, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return nil, 0, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, 0, errors.New("unterminated front matter")
	}

	block := strings.Join(lines[1:end], "\n")
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, end + 1, fmt.Errorf("invalid front matter: %w", err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = stringify(v)
	}
	return out, end + 1, nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		// Bare YAML dates decode as midnight UTC.
		if h, m, sec := val.Clock(); h == 0 && m == 0 && sec == 0 && val.Nanosecond() == 0 {
			return val.Format(domain.DateLayout)
		}
		return val.Format(time.RFC3339)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

package vault

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestHarvester_Harvest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.md", "- [ ] second file\n")
	writeFile(t, root, "a.md", "# Notes\n\n- [ ] first\n- [x] done\n")
	writeFile(t, root, "daily/2024-01-05.md", "- [ ] in daily\n")
	writeFile(t, root, "notes.txt", "- [ ] not markdown\n")
	writeFile(t, root, ".obsidian/x.md", "- [ ] hidden\n")
	writeFile(t, root, "node_modules/pkg/readme.md", "- [ ] ignored\n")

	h := NewHarvester(root, []string{"node_modules"}, nil)
	tasks, err := h.Harvest(context.Background())
	require.NoError(t, err)

	var got []string
	for _, task := range tasks {
		got = append(got, task.Path)
	}
	assert.Equal(t, []string{"a.md", "a.md", "b.md", "daily/2024-01-05.md"}, got)

	assert.Equal(t, 3, tasks[0].Line)
	assert.Equal(t, "first", tasks[0].Text)
	assert.Equal(t, 4, tasks[1].Line)
	assert.True(t, tasks[1].Completed)
	assert.Equal(t, tasks[1].Text, tasks[1].Visual)
}

func TestHarvester_Harvest_MissingRoot(t *testing.T) {
	h := NewHarvester(filepath.Join(t.TempDir(), "missing"), nil, nil)
	_, err := h.Harvest(context.Background())
	assert.ErrorIs(t, err, domain.ErrVaultNotFound)
}

func TestHarvester_Harvest_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "- [ ] task\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHarvester(root, nil, nil).Harvest(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHarvester_Harvest_LogsBadFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "---\ntitle: [unclosed\n---\n- [ ] task\n")

	logger := &testutil.MockLogger{}
	tasks, err := NewHarvester(root, nil, logger).Harvest(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].FontMatter)
	assert.Equal(t, 4, tasks[0].Line)

	warnings := logger.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "invalid front matter")
}

func TestParseFile_Nesting(t *testing.T) {
	content := "- [ ] parent\n" +
		"  - [ ] child one\n" +
		"    - [ ] grandchild\n" +
		"  - plain item\n" +
		"    - [ ] under plain\n" +
		"- [ ] sibling\n" +
		"\n" +
		"Paragraph.\n" +
		"- [ ] new list\n"

	tasks, err := ParseFile("n.md", []byte(content))
	require.NoError(t, err)
	require.Len(t, tasks, 6)

	byLine := map[int]*domain.Task{}
	for _, task := range tasks {
		byLine[task.Line] = task
	}

	assert.Nil(t, byLine[1].Parent)
	assert.Equal(t, []int{2}, byLine[1].Children)
	require.NotNil(t, byLine[2].Parent)
	assert.Equal(t, 1, *byLine[2].Parent)
	assert.Equal(t, []int{3}, byLine[2].Children)
	require.NotNil(t, byLine[5].Parent)
	assert.Equal(t, 4, *byLine[5].Parent)
	assert.Nil(t, byLine[6].Parent)

	for _, line := range []int{1, 2, 3, 5, 6} {
		assert.Equal(t, 1, byLine[line].List, "line %d", line)
	}
	assert.Equal(t, 9, byLine[9].List)
}

func TestParseFile_FrontMatter(t *testing.T) {
	content := "---\n" +
		"title: Weekly\n" +
		"tags:\n" +
		"  - work\n" +
		"  - plan\n" +
		"count: 3\n" +
		"date: 2024-01-05\n" +
		"at: 2024-01-05T09:30:00Z\n" +
		"---\n" +
		"- [ ] task\n"

	tasks, err := ParseFile("w.md", []byte(content))
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, 10, tasks[0].Line)
	assert.Equal(t, map[string]string{
		"title": "Weekly",
		"tags":  "work, plan",
		"count": "3",
		"date":  "2024-01-05",
		"at":    "2024-01-05T09:30:00Z",
	}, tasks[0].FontMatter)
}

func TestParseFile_UnterminatedFrontMatter(t *testing.T) {
	tasks, err := ParseFile("u.md", []byte("---\ntitle: x\n- [ ] task\n"))
	require.Error(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 3, tasks[0].Line)
}

func TestParseFile_SkipsCodeFences(t *testing.T) {
	content := "```md\n- [ ] example\n```\n" +
		"~~~\n- [ ] also example\n~~~\n" +
		"- [ ] real\n"

	tasks, err := ParseFile("c.md", []byte(content))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "real", tasks[0].Text)
	assert.Equal(t, 7, tasks[0].Line)
}

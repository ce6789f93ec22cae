package cli

import (
	"bytes"
	"sync"
	"testing"

	"github.com/runoshun/tasks-timeline/internal/app"
	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/runoshun/tasks-timeline/internal/parser"
	"github.com/runoshun/tasks-timeline/internal/testutil"
	"github.com/stretchr/testify/require"
)

// newTestContainer creates an app.Container over fixed tasks with today 2024-01-10.
func newTestContainer(t *testing.T, tasks ...*domain.Task) *app.Container {
	t.Helper()
	return app.NewWithDeps(
		app.Config{VaultDir: t.TempDir()},
		domain.NewDefaultConfig(),
		&testutil.MockTaskSource{Tasks: tasks},
		testutil.NewMockClockOn(2024, 1, 10),
		&testutil.MockLogger{},
	)
}

func lineTask(t *testing.T, path string, lineNo int, line string) *domain.Task {
	t.Helper()
	tl, err := parser.ParseTaskLine(line)
	require.NoError(t, err)
	return tl.Task(path, lineNo)
}

func sampleTasks(t *testing.T) []*domain.Task {
	t.Helper()
	return []*domain.Task{
		lineTask(t, "inbox.md", 1, "- [ ] Pay rent 📅 2024-01-05"),
		lineTask(t, "inbox.md", 2, "- [ ] Call the bank 📅 2024-01-10 ⏫ #home"),
		lineTask(t, "inbox.md", 3, "- [x] Filed taxes ✅ 2024-01-02"),
		lineTask(t, "work/plan.md", 1, "- [ ] Ship release 🛫 2024-01-01 📅 2024-01-20 #work"),
	}
}

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

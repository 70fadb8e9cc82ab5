package store

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcarmona/atenea/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

func newTestTaskStore(maxTasks int, ttl time.Duration) *TaskStore {
	return NewTaskStore(maxTasks, ttl, testLogger())
}

func TestTaskStoreCreate(t *testing.T) {
	s := newTestTaskStore(10, time.Minute)

	id := s.Create("crear tarea comprar leche")
	assert.Equal(t, "task_1", id)

	task, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Equal(t, "crear tarea comprar leche", task.Query)
	assert.False(t, task.CreatedAt.IsZero())
	assert.True(t, task.CompletedAt.IsZero())
}

func TestTaskStoreCreateIDsStrictlyIncreasingUnderConcurrency(t *testing.T) {
	s := newTestTaskStore(1000, time.Minute)

	const goroutines = 20
	const perGoroutine = 25

	var wg sync.WaitGroup
	ids := make(chan string, goroutines*perGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- s.Create("query")
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	max := uint64(0)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		n, err := strconv.ParseUint(strings.TrimPrefix(id, "task_"), 10, 64)
		require.NoError(t, err)
		if n > max {
			max = n
		}
	}
	assert.Len(t, seen, goroutines*perGoroutine)
	assert.Equal(t, uint64(goroutines*perGoroutine), max)
}

func TestTaskStoreUpdateStampsCompletedAtOnce(t *testing.T) {
	s := newTestTaskStore(10, time.Minute)
	id := s.Create("query")

	s.Update(id, domain.TaskStatusProcessing, "", "")
	task, _ := s.Get(id)
	assert.True(t, task.CompletedAt.IsZero())

	s.Update(id, domain.TaskStatusCompleted, "listo", "")
	task, _ = s.Get(id)
	require.False(t, task.CompletedAt.IsZero())
	firstStamp := task.CompletedAt

	// A second terminal update must not move the stamp.
	s.Update(id, domain.TaskStatusFailed, "", "boom")
	task, _ = s.Get(id)
	assert.Equal(t, firstStamp, task.CompletedAt)
}

func TestTaskStoreUpdateRejectsInvalidStatus(t *testing.T) {
	s := newTestTaskStore(10, time.Minute)
	id := s.Create("crea una tarea")

	s.Update(id, domain.TaskStatus("exploded"), "boom", "")

	task, ok := s.Get(id)
	assert.True(t, ok)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Empty(t, task.Result)
}

func TestTaskStoreUpdateUnknownIDIsNoop(t *testing.T) {
	s := newTestTaskStore(10, time.Minute)

	// Must not panic or create a record.
	s.Update("task_99", domain.TaskStatusCompleted, "res", "")
	_, ok := s.Get("task_99")
	assert.False(t, ok)
}

func TestTaskStoreMarkConsumed(t *testing.T) {
	s := newTestTaskStore(10, time.Minute)

	completed := s.Create("a")
	s.Update(completed, domain.TaskStatusCompleted, "done", "")
	s.MarkConsumed(completed)
	task, _ := s.Get(completed)
	assert.Equal(t, domain.TaskStatusConsumed, task.Status)

	// Consuming a pending task is a no-op.
	pending := s.Create("b")
	s.MarkConsumed(pending)
	task, _ = s.Get(pending)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
}

func TestTaskStorePendingAndRecentCompleted(t *testing.T) {
	s := newTestTaskStore(10, time.Minute)

	p1 := s.Create("pending one")
	p2 := s.Create("processing one")
	s.Update(p2, domain.TaskStatusProcessing, "", "")

	c1 := s.Create("completed first")
	s.Update(c1, domain.TaskStatusCompleted, "r1", "")
	time.Sleep(5 * time.Millisecond)
	c2 := s.Create("completed second")
	s.Update(c2, domain.TaskStatusCompleted, "r2", "")

	f := s.Create("failed one")
	s.Update(f, domain.TaskStatusFailed, "", "boom")

	consumed := s.Create("consumed one")
	s.Update(consumed, domain.TaskStatusCompleted, "r3", "")
	s.MarkConsumed(consumed)

	pending := s.Pending()
	pendingIDs := make([]string, 0, len(pending))
	for _, task := range pending {
		pendingIDs = append(pendingIDs, task.ID)
	}
	assert.ElementsMatch(t, []string{p1, p2}, pendingIDs)

	completed := s.RecentCompleted()
	require.Len(t, completed, 2)
	// Most recently completed first; consumed and failed excluded.
	assert.Equal(t, c2, completed[0].ID)
	assert.Equal(t, c1, completed[1].ID)
}

func TestTaskStoreReturnsCopies(t *testing.T) {
	s := newTestTaskStore(10, time.Minute)
	id := s.Create("query")

	task, _ := s.Get(id)
	task.Status = domain.TaskStatusFailed
	task.Result = "mutated"

	fresh, _ := s.Get(id)
	assert.Equal(t, domain.TaskStatusPending, fresh.Status)
	assert.Empty(t, fresh.Result)
}

func TestTaskStoreTTLEviction(t *testing.T) {
	s := newTestTaskStore(10, 30*time.Millisecond)

	old := s.Create("old task")
	time.Sleep(50 * time.Millisecond)

	// Create triggers cleanup; the expired task must become unreachable.
	s.Create("fresh task")
	_, ok := s.Get(old)
	assert.False(t, ok)
}

func TestTaskStoreGetExpiresLazily(t *testing.T) {
	s := newTestTaskStore(10, 30*time.Millisecond)

	id := s.Create("short lived")
	time.Sleep(50 * time.Millisecond)

	// No Create ran in between; Get alone must drop the expired task.
	_, ok := s.Get(id)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestTaskStoreCapacityNeverExceeded(t *testing.T) {
	const maxTasks = 5
	s := newTestTaskStore(maxTasks, time.Minute)

	for i := 0; i < 3*maxTasks; i++ {
		s.Create(fmt.Sprintf("query %d", i))
		assert.LessOrEqual(t, s.Len(), maxTasks)
	}

	// The most recently created tasks survive capacity trimming.
	_, ok := s.Get("task_15")
	assert.True(t, ok)
	_, ok = s.Get("task_1")
	assert.False(t, ok)
}

func TestTaskStoreCleanupPrefersConsumedOverLive(t *testing.T) {
	const maxTasks = 3
	s := newTestTaskStore(maxTasks, time.Minute)

	// Oldest task is live; a consumed task fills the newest slot.
	live := s.Create("live")
	s.Create("filler")
	consumed := s.Create("delivered")
	s.Update(consumed, domain.TaskStatusCompleted, "ok", "")
	s.MarkConsumed(consumed)

	// The next create evicts the consumed task, not the older live one.
	s.Create("new")
	_, ok := s.Get(live)
	assert.True(t, ok)
	_, ok = s.Get(consumed)
	assert.False(t, ok)
}

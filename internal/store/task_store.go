package store

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jpcarmona/atenea/internal/domain"
)

// TaskStore is a thread-safe in-memory registry of background tasks and
// their lifecycle state. Tasks move forward only:
// pending -> processing -> completed|failed, with the terminal side
// transition completed -> consumed once a result has been delivered.
type TaskStore struct {
	mu       sync.Mutex
	tasks    map[string]*domain.BackgroundTask
	maxTasks int
	ttl      time.Duration
	counter  uint64
	logger   *slog.Logger
}

// NewTaskStore creates a task store that keeps at most maxTasks records and
// drops records older than ttl during opportunistic cleanup.
func NewTaskStore(maxTasks int, ttl time.Duration, logger *slog.Logger) *TaskStore {
	return &TaskStore{
		tasks:    make(map[string]*domain.BackgroundTask),
		maxTasks: maxTasks,
		ttl:      ttl,
		logger:   logger.With("component", "task_store"),
	}
}

// Create allocates a new pending task for the given query and returns its ID.
// IDs are unique and strictly increasing for the lifetime of the store.
// Cleanup runs before insertion so the new task is never evicted by the
// create that produced it.
func (s *TaskStore) Create(query string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Reserve one slot so occupancy never exceeds maxTasks after the insert.
	s.cleanupLocked(1)

	s.counter++
	id := fmt.Sprintf("task_%d", s.counter)
	s.tasks[id] = &domain.BackgroundTask{
		ID:        id,
		Query:     query,
		Status:    domain.TaskStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	s.logger.Debug("task created", "task_id", id, "task_count", len(s.tasks))
	return id
}

// Update transitions a task to the given status and records result/error
// text. Unknown IDs are a no-op; the task may already have been evicted.
// CompletedAt is stamped exactly once, on the first transition into a
// terminal status.
func (s *TaskStore) Update(id string, status domain.TaskStatus, result, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return
	}

	updated := *task
	updated.Status = status
	if result != "" {
		updated.Result = result
	}
	if errMsg != "" {
		updated.Error = errMsg
	}
	if (status == domain.TaskStatusCompleted || status == domain.TaskStatusFailed) &&
		updated.CompletedAt.IsZero() {
		updated.CompletedAt = time.Now().UTC()
	}

	// The store is the sole owner of task records; an update that would leave
	// one invalid is dropped rather than stored.
	if err := updated.Validate(); err != nil {
		s.logger.Warn("ignoring invalid task update", "task_id", id, "error", err)
		return
	}
	*task = updated
}

// MarkConsumed transitions a completed task to consumed so later status
// queries stop offering it. Any other status is left untouched.
func (s *TaskStore) MarkConsumed(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.Status != domain.TaskStatusCompleted {
		return
	}
	task.Status = domain.TaskStatusConsumed
}

// Pending returns copies of all tasks that are still pending or processing.
func (s *TaskStore) Pending() []domain.BackgroundTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.BackgroundTask
	for _, task := range s.tasks {
		if task.Status == domain.TaskStatusPending || task.Status == domain.TaskStatusProcessing {
			out = append(out, *task)
		}
	}
	return out
}

// RecentCompleted returns copies of all completed (not consumed, not failed)
// tasks, most recently completed first.
func (s *TaskStore) RecentCompleted() []domain.BackgroundTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.BackgroundTask
	for _, task := range s.tasks {
		if task.Status == domain.TaskStatusCompleted {
			out = append(out, *task)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out
}

// Get returns a copy of the task with the given ID, if it exists. An expired
// task is deleted on access, the same lazy expiry the conversation store uses.
func (s *TaskStore) Get(id string) (domain.BackgroundTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.BackgroundTask{}, false
	}
	if time.Now().UTC().Sub(task.CreatedAt) > s.ttl {
		delete(s.tasks, id)
		return domain.BackgroundTask{}, false
	}
	return *task, true
}

// Len returns the current number of stored tasks.
func (s *TaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// cleanupLocked evicts stale records, leaving room for reserve upcoming
// inserts. The order matters: TTL expiry and consumed-task removal run first
// so capacity trimming prefers to keep live, useful tasks. Callers must hold
// s.mu.
func (s *TaskStore) cleanupLocked(reserve int) {
	now := time.Now().UTC()

	for id, task := range s.tasks {
		if now.Sub(task.CreatedAt) > s.ttl {
			delete(s.tasks, id)
		}
	}

	for id, task := range s.tasks {
		if task.Status == domain.TaskStatusConsumed {
			delete(s.tasks, id)
		}
	}

	capacity := s.maxTasks - reserve
	if capacity < 0 {
		capacity = 0
	}
	if len(s.tasks) <= capacity {
		return
	}

	// Still over capacity: drop the oldest-created tasks.
	remaining := make([]*domain.BackgroundTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		remaining = append(remaining, task)
	}
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].CreatedAt.Before(remaining[j].CreatedAt)
	})

	excess := len(remaining) - capacity
	for _, task := range remaining[:excess] {
		delete(s.tasks, task.ID)
	}

	s.logger.Debug("task store trimmed to capacity",
		"evicted", excess,
		"task_count", len(s.tasks))
}

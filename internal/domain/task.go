package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the processing state of a background task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusConsumed   TaskStatus = "consumed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Common validation errors for BackgroundTask
var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrEmptyTaskQuery   = errors.New("task query cannot be empty")
	ErrInvalidTaskState = errors.New("invalid task status")
)

// BackgroundTask records a query that is being (or has been) processed in the
// background, so a later status query can retrieve its outcome. Tasks are
// owned and mutated exclusively by the task store; callers only hold the ID.
type BackgroundTask struct {
	ID        string     `json:"id"`
	Query     string     `json:"query"`
	Status    TaskStatus `json:"status"`
	Result    string     `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	// CompletedAt is zero until the task first transitions into a terminal
	// status (completed or failed). It is stamped at most once.
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// Validate checks if the BackgroundTask has valid data.
// Returns an error if any field fails validation.
func (t *BackgroundTask) Validate() error {
	if t.ID == "" {
		return ErrEmptyTaskID
	}

	if t.Query == "" {
		return ErrEmptyTaskQuery
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskState
	}

	return nil
}

// Terminal reports whether the task has reached a terminal status.
func (t *BackgroundTask) Terminal() bool {
	switch t.Status {
	case TaskStatusCompleted, TaskStatusConsumed, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusProcessing, TaskStatusCompleted,
		TaskStatusConsumed, TaskStatusFailed:
		return true
	default:
		return false
	}
}

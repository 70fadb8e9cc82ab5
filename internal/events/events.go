package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names a task lifecycle transition.
type EventType string

const (
	// TaskStarted fires when a background task begins processing.
	TaskStarted EventType = "task.started"

	// TaskCompleted fires when a background task finishes successfully.
	TaskCompleted EventType = "task.completed"

	// TaskFailed fires when a background task ends in an error.
	TaskFailed EventType = "task.failed"

	// TaskConsumed fires when a completed task's result is delivered to the
	// user through a status query.
	TaskConsumed EventType = "task.consumed"
)

// TaskEvent describes one lifecycle transition of a background task.
type TaskEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// Type is the lifecycle transition that occurred.
	Type EventType `json:"type"`

	// TaskID is the background task the event belongs to.
	TaskID string `json:"task_id"`

	// Query is the user query the task is processing.
	Query string `json:"query"`

	// Domain is the classified domain, when known at emit time.
	Domain string `json:"domain,omitempty"`

	// Detail carries a transition-specific note: the result summary on
	// completion, the error message on failure.
	Detail string `json:"detail,omitempty"`

	// CreatedAt is the timestamp when the event was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskEvent creates a TaskEvent for the given transition.
func NewTaskEvent(eventType EventType, taskID, query string) *TaskEvent {
	return &TaskEvent{
		ID:        uuid.New(),
		Type:      eventType,
		TaskID:    taskID,
		Query:     query,
		CreatedAt: time.Now(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the processor to publish events without direct knowledge of
// handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}

package ai

import (
	"encoding/json"
	"fmt"

	"github.com/jpcarmona/atenea/internal/domain"
)

// Result is the structured outcome of an AI handler call. The model answers
// with a JSON object carrying the recognized intent, the spoken response,
// and intent-specific data.
type Result struct {
	Intent   string `json:"intent"`
	Response string `json:"response"`

	// Task carries the new task data for a create intent in the tasks domain.
	Task *domain.TaskPayload `json:"task,omitempty"`

	// Contact carries the new contact data for a create intent in the
	// contacts domain.
	Contact *domain.ContactPayload `json:"contact,omitempty"`

	// ID targets an existing record for edit/delete intents.
	ID string `json:"id,omitempty"`

	// Updates holds intent-specific field changes for an edit intent. Its
	// shape depends on the domain, so it is decoded on demand via
	// TaskUpdates or ContactUpdates.
	Updates json.RawMessage `json:"updates,omitempty"`

	// MatchedTaskID names the completed background task that best answers a
	// status query, if the matcher found one.
	MatchedTaskID string `json:"matched_task_id,omitempty"`
}

// TaskUpdates decodes the updates payload as task field changes.
// Nil fields were not mentioned by the model and must be left untouched.
func (r *Result) TaskUpdates() (*domain.TaskUpdates, error) {
	if len(r.Updates) == 0 {
		return nil, nil
	}
	var u domain.TaskUpdates
	if err := json.Unmarshal(r.Updates, &u); err != nil {
		return nil, fmt.Errorf("failed to decode task updates: %w", err)
	}
	return &u, nil
}

// ContactUpdates decodes the updates payload as contact field changes.
func (r *Result) ContactUpdates() (*domain.ContactUpdates, error) {
	if len(r.Updates) == 0 {
		return nil, nil
	}
	var u domain.ContactUpdates
	if err := json.Unmarshal(r.Updates, &u); err != nil {
		return nil, fmt.Errorf("failed to decode contact updates: %w", err)
	}
	return &u, nil
}

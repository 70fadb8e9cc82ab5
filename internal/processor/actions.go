package processor

import (
	"context"
	"fmt"

	"github.com/jpcarmona/atenea/internal/ai"
	"github.com/jpcarmona/atenea/internal/domain"
)

// Partial-failure notices appended to the response when the record action
// succeeded but the calendar sync did not. The record side is the source of
// truth; calendar sync failures must not fail the task.
const (
	noticeCreateSyncFailed = "La tarea se creó pero no pude sincronizarla con el calendario."
	noticeEditSyncFailed   = "La tarea se actualizó pero no pude sincronizar el cambio con el calendario."
	noticeDeleteSyncFailed = "La tarea se marcó como completada pero no pude eliminar el evento del calendario."
)

// executeActions applies the intent the model decided on to the external
// stores and returns the final response text. Action errors do not fail the
// task; the response is rewritten to tell the user what went wrong.
//
// taskRecords is the pre-fetched active task list for the tasks domain,
// reused here to resolve calendar event IDs without a second fetch.
func (p *Processor) executeActions(
	ctx context.Context,
	d domain.Domain,
	result *ai.Result,
	taskRecords []domain.TaskRecord,
) string {
	responseText := result.Response
	if responseText == "" {
		responseText = "Procesado."
	}

	var err error
	switch d {
	case domain.DomainTasks:
		responseText, err = p.executeTaskAction(ctx, result, taskRecords, responseText)
	case domain.DomainContacts:
		err = p.executeContactAction(ctx, result)
	}

	if err != nil {
		p.logger.Error("action execution failed", "intent", result.Intent, "error", err)
		return fmt.Sprintf("Entendido, pero hubo un error ejecutando la acción: %v", err)
	}
	return responseText
}

func (p *Processor) executeTaskAction(
	ctx context.Context,
	result *ai.Result,
	taskRecords []domain.TaskRecord,
	responseText string,
) (string, error) {
	switch result.Intent {
	case "create":
		if result.Task == nil {
			return responseText, nil
		}
		pageID, err := p.data.AddTask(ctx, *result.Task)
		if err != nil {
			return responseText, err
		}
		if result.Task.CreateCalendarEvent && result.Task.DueDateTime != "" {
			if !p.syncCreatedEvent(ctx, pageID, *result.Task) {
				responseText += " " + noticeCreateSyncFailed
			}
		}
		return responseText, nil

	case "edit":
		if result.ID == "" {
			return responseText, nil
		}
		updates, err := result.TaskUpdates()
		if err != nil {
			return responseText, err
		}
		if updates == nil {
			return responseText, nil
		}
		if err := p.data.UpdateTask(ctx, result.ID, *updates); err != nil {
			return responseText, err
		}
		if notice := p.syncEditedEvent(ctx, result.ID, *updates, taskRecords); notice != "" {
			responseText += " " + notice
		}
		return responseText, nil

	case "delete":
		if result.ID == "" {
			return responseText, nil
		}
		return responseText, p.data.ArchiveTask(ctx, result.ID)
	}

	return responseText, nil
}

// syncCreatedEvent creates the calendar event for a new scheduled task and
// writes the event ID back onto the task record. Reports success.
func (p *Processor) syncCreatedEvent(ctx context.Context, pageID string, task domain.TaskPayload) bool {
	if p.calendar == nil {
		return false
	}

	eventID, err := p.calendar.CreateEvent(ctx, task.Name, task.DueDateTime)
	if err != nil {
		p.logger.Warn("calendar event creation failed", "task_page_id", pageID, "error", err)
		return false
	}

	if err := p.data.UpdateTask(ctx, pageID, domain.TaskUpdates{GoogleEventID: &eventID}); err != nil {
		p.logger.Warn("failed to store calendar event ID on task",
			"task_page_id", pageID, "event_id", eventID, "error", err)
		return false
	}

	p.logger.Info("task synced with calendar", "task_page_id", pageID, "event_id", eventID)
	return true
}

// syncEditedEvent keeps a task's calendar event in line with an edit.
// A schedule or name change updates the event; marking the task done removes
// it. Returns a notice to append to the response when the sync failed.
func (p *Processor) syncEditedEvent(
	ctx context.Context,
	taskID string,
	updates domain.TaskUpdates,
	taskRecords []domain.TaskRecord,
) string {
	record := findTask(taskRecords, taskID)
	if record == nil || record.GoogleEventID == "" || p.calendar == nil {
		return ""
	}

	if updates.TouchesSchedule() {
		change := domain.CalendarEventChange{}
		if updates.DueDateTime != nil {
			change.Start = *updates.DueDateTime
		} else if updates.DueDate != nil {
			change.Start = *updates.DueDate
		}
		if updates.Name != nil {
			change.Summary = *updates.Name
		}

		if err := p.calendar.UpdateEvent(ctx, record.GoogleEventID, change); err != nil {
			p.logger.Warn("calendar event update failed",
				"event_id", record.GoogleEventID, "error", err)
			return noticeEditSyncFailed
		}
		return ""
	}

	if updates.Done != nil && *updates.Done {
		if err := p.calendar.DeleteEvent(ctx, record.GoogleEventID); err != nil {
			p.logger.Warn("calendar event deletion failed",
				"event_id", record.GoogleEventID, "error", err)
			return noticeDeleteSyncFailed
		}
		empty := ""
		if err := p.data.UpdateTask(ctx, taskID, domain.TaskUpdates{GoogleEventID: &empty}); err != nil {
			p.logger.Warn("failed to clear calendar event ID on task",
				"task_page_id", taskID, "error", err)
		}
	}
	return ""
}

func (p *Processor) executeContactAction(ctx context.Context, result *ai.Result) error {
	switch result.Intent {
	case "create":
		if result.Contact == nil {
			return nil
		}
		_, err := p.data.AddContact(ctx, *result.Contact)
		return err

	case "edit":
		if result.ID == "" {
			return nil
		}
		updates, err := result.ContactUpdates()
		if err != nil {
			return err
		}
		if updates == nil {
			return nil
		}
		return p.data.UpdateContact(ctx, result.ID, *updates)

	case "delete":
		if result.ID == "" {
			return nil
		}
		return p.data.ArchiveContact(ctx, result.ID)
	}

	return nil
}

func findTask(records []domain.TaskRecord, id string) *domain.TaskRecord {
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}

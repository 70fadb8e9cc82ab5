package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcarmona/atenea/internal/ai"
	"github.com/jpcarmona/atenea/internal/domain"
)

func TestExecuteActionsCreateTaskWithCalendarSync(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)

	result := &ai.Result{
		Intent:   "create",
		Response: "Tarea creada.",
		Task: &domain.TaskPayload{
			Name:                "cita médica",
			DueDateTime:         "2026-09-01T14:00:00-05:00",
			CreateCalendarEvent: true,
		},
	}

	response := fx.processor.executeActions(context.Background(), domain.DomainTasks, result, nil)

	assert.Equal(t, "Tarea creada.", response)
	require.Len(t, fx.data.addedTasks, 1)
	assert.Equal(t, []string{"cita médica"}, fx.calendar.created)

	// The event ID is written back onto the created task.
	updates := fx.data.updatedTasks["page_1"]
	require.Len(t, updates, 1)
	require.NotNil(t, updates[0].GoogleEventID)
	assert.Equal(t, "event_1", *updates[0].GoogleEventID)
}

func TestExecuteActionsCreateSyncFailureAppendsNotice(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)
	fx.calendar.createErr = errors.New("calendar down")

	result := &ai.Result{
		Intent:   "create",
		Response: "Tarea creada.",
		Task: &domain.TaskPayload{
			Name:                "cita médica",
			DueDateTime:         "2026-09-01T14:00:00-05:00",
			CreateCalendarEvent: true,
		},
	}

	response := fx.processor.executeActions(context.Background(), domain.DomainTasks, result, nil)

	// The task itself was created; only the sync failed.
	assert.Len(t, fx.data.addedTasks, 1)
	assert.Equal(t, "Tarea creada. "+noticeCreateSyncFailed, response)
}

func TestExecuteActionsCreateWithoutEventFlagSkipsCalendar(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)

	result := &ai.Result{
		Intent:   "create",
		Response: "Tarea creada.",
		Task:     &domain.TaskPayload{Name: "comprar leche", DueDate: "2026-09-01"},
	}

	fx.processor.executeActions(context.Background(), domain.DomainTasks, result, nil)

	assert.Len(t, fx.data.addedTasks, 1)
	assert.Empty(t, fx.calendar.created)
}

func TestExecuteActionsEditReschedulesEvent(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)

	records := []domain.TaskRecord{{ID: "page_9", Name: "cita", GoogleEventID: "event_9"}}
	result := &ai.Result{
		Intent:   "edit",
		Response: "Tarea actualizada.",
		ID:       "page_9",
		Updates:  json.RawMessage(`{"dueDateTime": "2026-09-02T10:00:00-05:00"}`),
	}

	response := fx.processor.executeActions(context.Background(), domain.DomainTasks, result, records)

	assert.Equal(t, "Tarea actualizada.", response)
	require.Len(t, fx.calendar.updated, 1)
	assert.Equal(t, "2026-09-02T10:00:00-05:00", fx.calendar.updated[0].Start)
}

func TestExecuteActionsEditSyncFailureAppendsNotice(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)
	fx.calendar.updateErr = errors.New("calendar down")

	records := []domain.TaskRecord{{ID: "page_9", GoogleEventID: "event_9"}}
	result := &ai.Result{
		Intent:   "edit",
		Response: "Tarea actualizada.",
		ID:       "page_9",
		Updates:  json.RawMessage(`{"name": "nuevo nombre"}`),
	}

	response := fx.processor.executeActions(context.Background(), domain.DomainTasks, result, records)

	assert.Equal(t, "Tarea actualizada. "+noticeEditSyncFailed, response)
}

func TestExecuteActionsMarkDoneRemovesEvent(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)

	records := []domain.TaskRecord{{ID: "page_9", GoogleEventID: "event_9"}}
	result := &ai.Result{
		Intent:   "edit",
		Response: "Marcada como completada.",
		ID:       "page_9",
		Updates:  json.RawMessage(`{"done": true}`),
	}

	response := fx.processor.executeActions(context.Background(), domain.DomainTasks, result, records)

	assert.Equal(t, "Marcada como completada.", response)
	assert.Equal(t, []string{"event_9"}, fx.calendar.deleted)

	// The done update plus the cleared event ID.
	updates := fx.data.updatedTasks["page_9"]
	require.Len(t, updates, 2)
	require.NotNil(t, updates[1].GoogleEventID)
	assert.Empty(t, *updates[1].GoogleEventID)
}

func TestExecuteActionsEditWithoutEventLeavesCalendarAlone(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)

	records := []domain.TaskRecord{{ID: "page_9"}}
	result := &ai.Result{
		Intent:  "edit",
		ID:      "page_9",
		Updates: json.RawMessage(`{"done": true}`),
	}

	fx.processor.executeActions(context.Background(), domain.DomainTasks, result, records)

	assert.Empty(t, fx.calendar.deleted)
	assert.Empty(t, fx.calendar.updated)
}

func TestExecuteActionsDeleteArchivesTask(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)

	result := &ai.Result{Intent: "delete", Response: "Tarea eliminada.", ID: "page_3"}
	fx.processor.executeActions(context.Background(), domain.DomainTasks, result, nil)

	assert.Equal(t, []string{"page_3"}, fx.data.archivedTasks)
}

func TestExecuteActionsActionErrorRewritesResponse(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)
	fx.data.addTaskErr = errors.New("database unreachable")

	result := &ai.Result{
		Intent:   "create",
		Response: "Tarea creada.",
		Task:     &domain.TaskPayload{Name: "algo"},
	}

	response := fx.processor.executeActions(context.Background(), domain.DomainTasks, result, nil)

	assert.Contains(t, response, "hubo un error ejecutando la acción")
	assert.Contains(t, response, "database unreachable")
}

func TestExecuteActionsContactIntents(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainContacts, handler)

	create := &ai.Result{
		Intent:  "create",
		Contact: &domain.ContactPayload{Name: "Ana", Groups: "Family"},
	}
	fx.processor.executeActions(context.Background(), domain.DomainContacts, create, nil)
	require.Len(t, fx.data.addedContacts, 1)
	assert.Equal(t, "Ana", fx.data.addedContacts[0].Name)

	edit := &ai.Result{
		Intent:  "edit",
		ID:      "contact_1",
		Updates: json.RawMessage(`{"email": "ana@example.com"}`),
	}
	fx.processor.executeActions(context.Background(), domain.DomainContacts, edit, nil)
	updates := fx.data.updatedContacts["contact_1"]
	require.Len(t, updates, 1)
	require.NotNil(t, updates[0].Email)
	assert.Equal(t, "ana@example.com", *updates[0].Email)

	del := &ai.Result{Intent: "delete", ID: "contact_1"}
	fx.processor.executeActions(context.Background(), domain.DomainContacts, del, nil)
	assert.Equal(t, []string{"contact_1"}, fx.data.archived)
}

func TestExecuteActionsQueryIntentTouchesNothing(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainTasks, handler)

	result := &ai.Result{Intent: "query", Response: "Tienes 2 tareas."}
	response := fx.processor.executeActions(context.Background(), domain.DomainTasks, result, nil)

	assert.Equal(t, "Tienes 2 tareas.", response)
	assert.Empty(t, fx.data.addedTasks)
	assert.Empty(t, fx.data.archivedTasks)
}

func TestExecuteActionsEmptyResponseDefaults(t *testing.T) {
	handler := &fakeAI{}
	fx := newFixture(t, domain.DomainGeneral, handler)

	result := &ai.Result{Intent: "query"}
	response := fx.processor.executeActions(context.Background(), domain.DomainGeneral, result, nil)

	assert.Equal(t, "Procesado.", response)
}

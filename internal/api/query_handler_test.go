package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcarmona/atenea/internal/ai"
	"github.com/jpcarmona/atenea/internal/events"
	"github.com/jpcarmona/atenea/internal/store"
)

type fakeProcessor struct {
	result       *ai.Result
	completed    bool
	calls        int
	lastQuery    string
	lastDeadline time.Duration
	lastSession  string
}

func (f *fakeProcessor) ProcessWithDeadline(ctx context.Context, query string, deadline time.Duration, sessionID string) (*ai.Result, bool) {
	f.calls++
	f.lastQuery = query
	f.lastDeadline = deadline
	f.lastSession = sessionID
	return f.result, f.completed
}

type fakeStatusHandler struct {
	result *ai.Result
	calls  int
}

func (f *fakeStatusHandler) HandleStatus(ctx context.Context, query string, tasks ai.TaskReader) *ai.Result {
	f.calls++
	return f.result
}

type fakeEmitter struct {
	events []*events.TaskEvent
}

func (f *fakeEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	f.events = append(f.events, event)
	return nil
}

func newQueryTestServer(processor *fakeProcessor, status *fakeStatusHandler) (*QueryHandler, *store.TaskStore) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	tasks := store.NewTaskStore(50, 5*time.Minute, logger)
	return NewQueryHandler(processor, status, tasks, nil, 6*time.Second, logger), tasks
}

func postQuery(t *testing.T, handler *QueryHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleQuery(w, req)
	return w
}

func decodeQueryResponse(t *testing.T, w *httptest.ResponseRecorder) QueryResponse {
	t.Helper()
	var resp QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleQueryCompleted(t *testing.T) {
	processor := &fakeProcessor{
		result:    &ai.Result{Intent: "query", Response: "Tienes 2 tareas."},
		completed: true,
	}
	status := &fakeStatusHandler{}
	handler, _ := newQueryTestServer(processor, status)

	w := postQuery(t, handler, `{"query": "¿qué tengo pendiente?", "session_id": "s1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeQueryResponse(t, w)
	assert.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, "Tienes 2 tareas.", resp.Response)
	assert.Equal(t, "s1", processor.lastSession)
	assert.Zero(t, status.calls, "non-status queries do not hit the status handler")
}

func TestHandleQueryProcessing(t *testing.T) {
	processor := &fakeProcessor{completed: false}
	handler, _ := newQueryTestServer(processor, &fakeStatusHandler{})

	w := postQuery(t, handler, `{"query": "organiza mi semana"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeQueryResponse(t, w)
	assert.Equal(t, StatusProcessing, resp.Status)
	assert.Equal(t, processingAck, resp.Response)
}

func TestHandleQueryStatusShortCircuit(t *testing.T) {
	processor := &fakeProcessor{}
	status := &fakeStatusHandler{
		result: &ai.Result{Intent: "status", Response: "Ya terminé con eso."},
	}
	handler, _ := newQueryTestServer(processor, status)

	w := postQuery(t, handler, `{"query": "¿qué pasó con mi tarea?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeQueryResponse(t, w)
	assert.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, "Ya terminé con eso.", resp.Response)
	assert.Equal(t, 1, status.calls)
	assert.Zero(t, processor.calls, "status queries start no background work")
}

func TestHandleQueryStatusEmitsConsumption(t *testing.T) {
	status := &fakeStatusHandler{
		result: &ai.Result{
			Intent:        "status",
			Response:      "Terminé: tienes 3 tareas para hoy.",
			MatchedTaskID: "task_7",
		},
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	tasks := store.NewTaskStore(50, 5*time.Minute, logger)
	emitter := &fakeEmitter{}
	handler := NewQueryHandler(&fakeProcessor{}, status, tasks, emitter, 6*time.Second, logger)

	w := postQuery(t, handler, `{"query": "¿qué pasó?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, emitter.events, 1)
	assert.Equal(t, events.TaskConsumed, emitter.events[0].Type)
	assert.Equal(t, "task_7", emitter.events[0].TaskID)
}

func TestHandleQueryTimeouts(t *testing.T) {
	processor := &fakeProcessor{result: &ai.Result{Response: "ok"}, completed: true}
	handler, _ := newQueryTestServer(processor, &fakeStatusHandler{})

	// Explicit timeout wins.
	postQuery(t, handler, `{"query": "hola", "timeout": 2.5}`)
	assert.Equal(t, 2500*time.Millisecond, processor.lastDeadline)

	// Zero timeout falls back to the configured default.
	postQuery(t, handler, `{"query": "hola"}`)
	assert.Equal(t, 6*time.Second, processor.lastDeadline)
}

func TestHandleQueryRejectsBadRequests(t *testing.T) {
	processor := &fakeProcessor{}
	handler, _ := newQueryTestServer(processor, &fakeStatusHandler{})

	w := postQuery(t, handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postQuery(t, handler, `{"timeout": 3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "query is required")

	w = postQuery(t, handler, `{"query": "hola", "timeout": 900}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "timeout above the cap")

	assert.Zero(t, processor.calls)
}

func TestIsStatusQuery(t *testing.T) {
	statusQueries := []string{
		"¿Qué pasó con mi tarea?",
		"que paso",
		"¿Ya terminaste?",
		"dame el resultado",
		"¿está listo?",
		"¿ya quedó?",
		"ya quedo lo que te pedí",
	}
	for _, q := range statusQueries {
		assert.True(t, isStatusQuery(q), "query: %s", q)
	}

	normalQueries := []string{
		"crea una tarea para mañana",
		"¿cuándo cumple años Ana?",
		"hola",
	}
	for _, q := range normalQueries {
		assert.False(t, isStatusQuery(q), "query: %s", q)
	}
}

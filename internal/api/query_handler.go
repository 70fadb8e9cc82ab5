package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jpcarmona/atenea/internal/ai"
	"github.com/jpcarmona/atenea/internal/api/shared"
	"github.com/jpcarmona/atenea/internal/events"
	"github.com/jpcarmona/atenea/internal/store"
)

// Spoken acknowledgment returned when processing outlives the deadline.
const processingAck = "Procesando tu solicitud, pregúntame en unos segundos qué pasó."

// statusKeywords mark a query as asking about background work. Matching is a
// lowercase substring check, so both accented and unaccented spellings are
// listed.
var statusKeywords = []string{
	"qué pasó",
	"que paso",
	"terminaste",
	"resultado",
	"listo",
	"ya quedó",
	"ya quedo",
}

// QueryProcessor runs a query through the deadline-bound pipeline.
type QueryProcessor interface {
	ProcessWithDeadline(ctx context.Context, query string, deadline time.Duration, sessionID string) (*ai.Result, bool)
}

// StatusHandler answers status queries from the task store.
type StatusHandler interface {
	HandleStatus(ctx context.Context, query string, tasks ai.TaskReader) *ai.Result
}

// QueryHandler serves POST /query.
type QueryHandler struct {
	processor      QueryProcessor
	status         StatusHandler
	tasks          *store.TaskStore
	emitter        events.EventEmitter
	defaultTimeout time.Duration
	logger         *slog.Logger
}

// NewQueryHandler creates a QueryHandler. The emitter may be nil, in which
// case consumption events are not published.
func NewQueryHandler(
	processor QueryProcessor,
	status StatusHandler,
	tasks *store.TaskStore,
	emitter events.EventEmitter,
	defaultTimeout time.Duration,
	logger *slog.Logger,
) *QueryHandler {
	return &QueryHandler{
		processor:      processor,
		status:         status,
		tasks:          tasks,
		emitter:        emitter,
		defaultTimeout: defaultTimeout,
		logger:         logger.With("component", "query_handler"),
	}
}

// HandleQuery processes a query with a deadline. Status queries are answered
// directly from the task store without starting new background work.
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	deadline := h.defaultTimeout
	if req.Timeout > 0 {
		deadline = time.Duration(req.Timeout * float64(time.Second))
	}

	h.logger.Info("query received",
		"query_length", len(req.Query),
		"deadline", deadline,
		"has_session", req.SessionID != "")

	if isStatusQuery(req.Query) {
		result := h.status.HandleStatus(r.Context(), req.Query, h.tasks)
		if result.MatchedTaskID != "" && h.emitter != nil {
			event := events.NewTaskEvent(events.TaskConsumed, result.MatchedTaskID, req.Query)
			if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
				h.logger.Warn("failed to emit consumption event",
					"task_id", result.MatchedTaskID, "error", err)
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, QueryResponse{
			Response: result.Response,
			Status:   StatusCompleted,
		})
		return
	}

	result, completed := h.processor.ProcessWithDeadline(r.Context(), req.Query, deadline, req.SessionID)
	if !completed {
		shared.RespondWithJSON(w, r, http.StatusOK, QueryResponse{
			Response: processingAck,
			Status:   StatusProcessing,
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QueryResponse{
		Response: result.Response,
		Status:   StatusCompleted,
	})
}

// isStatusQuery reports whether the query asks about background task status.
func isStatusQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range statusKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

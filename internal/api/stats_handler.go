package api

import (
	"net/http"

	"github.com/jpcarmona/atenea/internal/api/shared"
	"github.com/jpcarmona/atenea/internal/store"
)

// StatsHandler serves the read-only endpoints: GET /, GET /stats and
// GET /health.
type StatsHandler struct {
	tasks    *store.TaskStore
	sessions *store.ConversationStore
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(tasks *store.TaskStore, sessions *store.ConversationStore) *StatsHandler {
	return &StatsHandler{tasks: tasks, sessions: sessions}
}

// HandleStats reports store diagnostics.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	sessionStats := h.sessions.Stats()

	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		Tasks: TaskStats{
			Total:   h.tasks.Len(),
			Pending: len(h.tasks.Pending()),
		},
		Sessions: SessionStats{
			Active:     sessionStats.ActiveSessions,
			MaxTurns:   sessionStats.MaxTurns,
			TTLSeconds: int(sessionStats.TTL.Seconds()),
		},
	})
}

// HandleRoot serves the service info page.
func (h *StatsHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ServiceInfoResponse{
		Service: "atenea",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"POST /query": "Main query endpoint",
			"GET /health": "Health check",
			"GET /stats":  "Store diagnostics",
		},
	})
}

// HandleHealth serves the monitoring health check.
func (h *StatsHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "atenea",
	})
}

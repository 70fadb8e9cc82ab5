package api

// QueryRequest is the request body of POST /query.
//
// Timeout is the caller's deadline in seconds; zero means the configured
// default. SessionID ties the query to a conversation session for
// short-term memory; without one the query is handled statelessly.
type QueryRequest struct {
	Query     string  `json:"query"      validate:"required"`
	Timeout   float64 `json:"timeout"    validate:"gte=0,lte=60"`
	SessionID string  `json:"session_id" validate:"omitempty,max=128"`
}

// QueryResponse is the response body of POST /query.
//
// Status is "completed" when Response carries the final answer, or
// "processing" when the work continues in the background and Response is an
// acknowledgment to speak to the user.
type QueryResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
	TaskID   string `json:"task_id,omitempty"`
}

// Query response statuses
const (
	StatusCompleted  = "completed"
	StatusProcessing = "processing"
)

// TaskStats describes the background task registry.
type TaskStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
}

// SessionStats describes the conversation session store.
type SessionStats struct {
	Active     int `json:"active"`
	MaxTurns   int `json:"max_turns"`
	TTLSeconds int `json:"ttl_seconds"`
}

// StatsResponse is the response body of GET /stats.
type StatsResponse struct {
	Tasks    TaskStats    `json:"tasks"`
	Sessions SessionStats `json:"sessions"`
}

// HealthResponse is the response body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ServiceInfoResponse is the response body of GET /.
type ServiceInfoResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

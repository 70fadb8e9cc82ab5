package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]string{"ok": "yes"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "yes", body["ok"])
}

func TestRespondWithErrorCarriesTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "Invalid request format")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request format", resp.Error)
	assert.Equal(t, GetTraceID(req.Context()), resp.TraceID)
	assert.NotEmpty(t, resp.TraceID)
}

func TestRespondWithErrorAndLogHidesRawError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	w := httptest.NewRecorder()

	rawErr := errors.New("notion call failed: api_key=ntn_supersecret123456")
	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "Internal server error", rawErr)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "ntn_supersecret123456")
	assert.Contains(t, w.Body.String(), "Internal server error")
}

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcarmona/atenea/internal/config"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSetupEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := setup(config.ServerConfig{Port: 8080, LogLevel: "info"}, &buf)

	log.Info("ready", "port", 8080)

	entry := logLine(t, &buf)
	assert.Equal(t, "ready", entry["msg"])
	assert.Equal(t, float64(8080), entry["port"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestSetupRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := setup(config.ServerConfig{Port: 8080, LogLevel: "warn"}, &buf)

	log.Info("suppressed")
	assert.Empty(t, buf.String())

	log.Warn("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestSetupInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := setup(config.ServerConfig{Port: 8080, LogLevel: "verbose"}, &buf)

	log.Debug("below default level")
	assert.Empty(t, buf.String())

	log.Info("at default level")
	assert.Contains(t, buf.String(), "at default level")
}

func TestSetupSetsDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	log := setup(config.ServerConfig{Port: 8080, LogLevel: "debug"}, &buf)

	assert.Equal(t, log.Handler(), slog.Default().Handler())
}

// Setup is the constructor the server wiring calls; it must always hand back
// a usable logger.
func TestSetupReturnsLogger(t *testing.T) {
	var log *slog.Logger = Setup(config.ServerConfig{Port: 8080, LogLevel: "info"})
	require.NotNil(t, log)
	assert.Equal(t, log.Handler(), slog.Default().Handler())
}

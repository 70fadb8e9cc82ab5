package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Required settings have no defaults, so tests must set them explicitly.
func setRequiredEnv(t *testing.T) {
	t.Setenv("ATENEA_LLM_GEMINI_API_KEY", "test-api-key")
	t.Setenv("ATENEA_NOTION_API_KEY", "secret-notion-key")
	t.Setenv("ATENEA_NOTION_TASKS_DATABASE_ID", "db-tasks")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 50, cfg.Task.MaxTasks)
	assert.Equal(t, 300, cfg.Task.TTLSeconds)
	assert.Equal(t, 5, cfg.Conversation.MaxTurns)
	assert.Equal(t, 120, cfg.Conversation.TTLSeconds)
	assert.Equal(t, 100, cfg.Conversation.MaxSessions)
	assert.Equal(t, 6.0, cfg.Processor.DefaultTimeoutSeconds)
	assert.Equal(t, 5, cfg.Processor.EnrichmentWorkers)
	assert.Equal(t, "America/Bogota", cfg.Calendar.Timezone)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ATENEA_SERVER_PORT", "9090")
	t.Setenv("ATENEA_SERVER_LOG_LEVEL", "debug")
	t.Setenv("ATENEA_CONVERSATION_MAX_TURNS", "8")
	t.Setenv("ATENEA_PROCESSOR_DEFAULT_TIMEOUT_SECONDS", "4.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 8, cfg.Conversation.MaxTurns)
	assert.Equal(t, 4.5, cfg.Processor.DefaultTimeoutSeconds)
}

func TestLoadMissingRequiredKey(t *testing.T) {
	t.Setenv("ATENEA_NOTION_API_KEY", "secret-notion-key")
	t.Setenv("ATENEA_NOTION_TASKS_DATABASE_ID", "db-tasks")
	// Gemini API key intentionally unset.

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ATENEA_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}

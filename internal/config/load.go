package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take precedence
// over values from the config file; a local .env file is loaded first so that
// development setups need no exported environment.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("ATENEA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env and defaults carry the load.
	}

	// AutomaticEnv alone does not populate nested keys during Unmarshal,
	// so bind every known key explicitly.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %q: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// configKeys lists every leaf key so environment variables like
// ATENEA_SERVER_PORT or ATENEA_LLM_GEMINI_API_KEY are picked up.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"task.max_tasks",
	"task.ttl_seconds",
	"conversation.max_turns",
	"conversation.ttl_seconds",
	"conversation.max_sessions",
	"llm.gemini_api_key",
	"llm.model_name",
	"llm.prompts_dir",
	"llm.max_retries",
	"llm.retry_delay_seconds",
	"notion.api_key",
	"notion.tasks_database_id",
	"notion.areas_database_id",
	"notion.projects_database_id",
	"notion.contacts_database_id",
	"calendar.credentials_file",
	"calendar.calendar_id",
	"calendar.timezone",
	"processor.default_timeout_seconds",
	"processor.enrichment_workers",
}

// setDefaults applies the defaults for a local single-user deployment.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("task.max_tasks", 50)
	v.SetDefault("task.ttl_seconds", 300)

	v.SetDefault("conversation.max_turns", 5)
	v.SetDefault("conversation.ttl_seconds", 120)
	v.SetDefault("conversation.max_sessions", 100)

	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.prompts_dir", "prompts")
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.retry_delay_seconds", 1)

	v.SetDefault("calendar.calendar_id", "primary")
	v.SetDefault("calendar.timezone", "America/Bogota")

	v.SetDefault("processor.default_timeout_seconds", 6.0)
	v.SetDefault("processor.enrichment_workers", 5)
}

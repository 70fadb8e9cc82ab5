package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"       validate:"required"`
	Task         TaskStoreConfig    `mapstructure:"task"         validate:"required"`
	Conversation ConversationConfig `mapstructure:"conversation" validate:"required"`
	LLM          LLMConfig          `mapstructure:"llm"          validate:"required"`
	Notion       NotionConfig       `mapstructure:"notion"       validate:"required"`
	Calendar     CalendarConfig     `mapstructure:"calendar"`
	Processor    ProcessorConfig    `mapstructure:"processor"    validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// TaskStoreConfig bounds the in-memory background task registry.
type TaskStoreConfig struct {
	MaxTasks   int `mapstructure:"max_tasks"   validate:"required,gt=0"`
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
}

// ConversationConfig bounds the in-memory conversation session store.
type ConversationConfig struct {
	MaxTurns    int `mapstructure:"max_turns"    validate:"required,gt=0"`
	TTLSeconds  int `mapstructure:"ttl_seconds"  validate:"required,gt=0"`
	MaxSessions int `mapstructure:"max_sessions" validate:"required,gt=0"`
}

// LLMConfig contains all AI integration related settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"      validate:"required"`
	ModelName         string `mapstructure:"model_name"          validate:"required"`
	PromptsDir        string `mapstructure:"prompts_dir"         validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}

// NotionConfig contains the data-store integration settings.
// Database IDs other than the tasks database are optional; components fall
// back to empty context when a database is not configured.
type NotionConfig struct {
	APIKey             string `mapstructure:"api_key"              validate:"required"`
	TasksDatabaseID    string `mapstructure:"tasks_database_id"    validate:"required"`
	AreasDatabaseID    string `mapstructure:"areas_database_id"`
	ProjectsDatabaseID string `mapstructure:"projects_database_id"`
	ContactsDatabaseID string `mapstructure:"contacts_database_id"`
}

// CalendarConfig contains the Google Calendar sync settings.
// Calendar sync is disabled when CredentialsFile is empty.
type CalendarConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	CalendarID      string `mapstructure:"calendar_id"`
	Timezone        string `mapstructure:"timezone"`
}

// ProcessorConfig tunes the deadline-bound background processor.
type ProcessorConfig struct {
	DefaultTimeoutSeconds float64 `mapstructure:"default_timeout_seconds" validate:"required,gt=0"`
	EnrichmentWorkers     int     `mapstructure:"enrichment_workers"      validate:"required,gt=0"`
}

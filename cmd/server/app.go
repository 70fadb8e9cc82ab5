package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jpcarmona/atenea/internal/ai"
	"github.com/jpcarmona/atenea/internal/config"
	"github.com/jpcarmona/atenea/internal/domain"
	"github.com/jpcarmona/atenea/internal/events"
	"github.com/jpcarmona/atenea/internal/intent"
	"github.com/jpcarmona/atenea/internal/platform/calendar"
	"github.com/jpcarmona/atenea/internal/platform/gemini"
	"github.com/jpcarmona/atenea/internal/platform/logger"
	"github.com/jpcarmona/atenea/internal/platform/notion"
	"github.com/jpcarmona/atenea/internal/processor"
	"github.com/jpcarmona/atenea/internal/store"
)

// startupFetchTimeout bounds the areas/projects cache load at startup.
const startupFetchTimeout = 30 * time.Second

// application holds the wired components of the server.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	tasks     *store.TaskStore
	sessions  *store.ConversationStore
	processor *processor.Processor
	aiHandler *ai.Handler
	emitter   events.EventEmitter
}

// initializeApp loads configuration and wires every component together.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName)

	prompts, err := ai.LoadPrompts(cfg.LLM.PromptsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	geminiClient, err := gemini.NewGeminiClient(ctx, appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	notionService, err := notion.NewService(cfg.Notion, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notion service: %w", err)
	}

	// Calendar sync is optional; without credentials the assistant still
	// manages tasks, it just cannot mirror them into the calendar.
	var calendarService processor.CalendarService
	if cfg.Calendar.CredentialsFile != "" {
		svc, err := calendar.NewService(ctx, cfg.Calendar, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", err)
		}
		calendarService = svc
	} else {
		appLogger.Warn("no calendar credentials configured, calendar sync disabled")
	}

	tasks := store.NewTaskStore(
		cfg.Task.MaxTasks,
		time.Duration(cfg.Task.TTLSeconds)*time.Second,
		appLogger,
	)
	sessions := store.NewConversationStore(
		cfg.Conversation.MaxTurns,
		time.Duration(cfg.Conversation.TTLSeconds)*time.Second,
		cfg.Conversation.MaxSessions,
		appLogger,
	)

	router := intent.NewRouter(geminiClient, prompts.Router, appLogger)
	aiHandler := ai.NewHandler(geminiClient, prompts, cfg.Calendar.Timezone, appLogger)

	emitter := events.NewInMemoryEventEmitter(appLogger)
	emitter.RegisterHandler(events.NewLogHandler(appLogger))

	areas, projects := loadStartupContext(ctx, notionService, appLogger)

	proc := processor.New(processor.Config{
		Tasks:         tasks,
		Sessions:      sessions,
		Data:          notionService,
		Calendar:      calendarService,
		Router:        router,
		AI:            aiHandler,
		Emitter:       emitter,
		Areas:         areas,
		Projects:      projects,
		EnrichWorkers: cfg.Processor.EnrichmentWorkers,
		Logger:        appLogger,
	})

	return &application{
		config:    cfg,
		logger:    appLogger,
		tasks:     tasks,
		sessions:  sessions,
		processor: proc,
		aiHandler: aiHandler,
		emitter:   emitter,
	}, nil
}

// loadStartupContext caches areas and projects once at startup. They change
// rarely; fetching them per query would eat into the response deadline. A
// fetch failure degrades to empty context instead of blocking startup.
func loadStartupContext(
	ctx context.Context,
	svc *notion.Service,
	logger *slog.Logger,
) ([]domain.Area, []domain.Project) {
	fetchCtx, cancel := context.WithTimeout(ctx, startupFetchTimeout)
	defer cancel()

	areas, err := svc.Areas(fetchCtx)
	if err != nil {
		logger.Warn("failed to load areas at startup", "error", err)
	}
	projects, err := svc.Projects(fetchCtx)
	if err != nil {
		logger.Warn("failed to load projects at startup", "error", err)
	}

	logger.Info("startup context loaded", "areas", len(areas), "projects", len(projects))
	return areas, projects
}

package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jpcarmona/atenea/internal/ai"
	"github.com/jpcarmona/atenea/internal/domain"
	"github.com/jpcarmona/atenea/internal/events"
	"github.com/jpcarmona/atenea/internal/store"
)

// DataStore is the external record store the pipeline reads context from and
// executes actions against.
type DataStore interface {
	ActiveTasks(ctx context.Context) ([]domain.TaskRecord, error)
	Contacts(ctx context.Context) ([]domain.Contact, error)
	PageContent(ctx context.Context, pageID string) (string, error)

	AddTask(ctx context.Context, task domain.TaskPayload) (string, error)
	UpdateTask(ctx context.Context, taskID string, updates domain.TaskUpdates) error
	ArchiveTask(ctx context.Context, taskID string) error

	AddContact(ctx context.Context, contact domain.ContactPayload) (string, error)
	UpdateContact(ctx context.Context, contactID string, updates domain.ContactUpdates) error
	ArchiveContact(ctx context.Context, contactID string) error
}

// CalendarService mirrors scheduled tasks into an external calendar.
type CalendarService interface {
	CreateEvent(ctx context.Context, summary, startTime string) (string, error)
	UpdateEvent(ctx context.Context, eventID string, updates domain.CalendarEventChange) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// IntentRouter classifies a query into a handling domain.
type IntentRouter interface {
	Classify(ctx context.Context, query string) domain.Domain
}

// AIHandler answers domain queries with structured results.
type AIHandler interface {
	HandleTasks(ctx context.Context, query string, tctx domain.TaskContext, history []domain.ConversationTurn) (*ai.Result, error)
	HandleContacts(ctx context.Context, query string, cctx domain.ContactContext, history []domain.ConversationTurn) (*ai.Result, error)
	HandleGeneral(ctx context.Context, query string, history []domain.ConversationTurn) (*ai.Result, error)
}

// Processor orchestrates the deadline-bound query pipeline.
type Processor struct {
	tasks    *store.TaskStore
	sessions *store.ConversationStore
	data     DataStore
	calendar CalendarService
	router   IntentRouter
	ai       AIHandler
	emitter  events.EventEmitter

	// areas and projects are cached at startup; they change rarely and
	// fetching them on every query would eat into the deadline.
	areas    []domain.Area
	projects []domain.Project

	enrichWorkers int
	logger        *slog.Logger
}

// Config carries the processor's dependencies.
type Config struct {
	Tasks         *store.TaskStore
	Sessions      *store.ConversationStore
	Data          DataStore
	Calendar      CalendarService
	Router        IntentRouter
	AI            AIHandler
	Emitter       events.EventEmitter
	Areas         []domain.Area
	Projects      []domain.Project
	EnrichWorkers int
	Logger        *slog.Logger
}

// New creates a Processor.
func New(cfg Config) *Processor {
	workers := cfg.EnrichWorkers
	if workers < 1 {
		workers = 1
	}

	return &Processor{
		tasks:         cfg.Tasks,
		sessions:      cfg.Sessions,
		data:          cfg.Data,
		calendar:      cfg.Calendar,
		router:        cfg.Router,
		ai:            cfg.AI,
		emitter:       cfg.Emitter,
		areas:         cfg.Areas,
		projects:      cfg.Projects,
		enrichWorkers: workers,
		logger:        cfg.Logger.With("component", "processor"),
	}
}

// ProcessWithDeadline registers the query as a background task, runs the
// pipeline in its own goroutine, and waits up to deadline for the result.
//
// The boolean reports whether the pipeline finished in time. When it did
// not, the returned result is nil and the pipeline keeps running; its result
// lands in the task store for a later status query. The background work is
// never cancelled by the caller's deadline.
func (p *Processor) ProcessWithDeadline(
	ctx context.Context,
	query string,
	deadline time.Duration,
	sessionID string,
) (*ai.Result, bool) {
	taskID := p.tasks.Create(query)

	done := make(chan *ai.Result, 1)
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		// The buffered channel makes this send non-blocking when the
		// caller has already given up.
		done <- p.runPipeline(bgCtx, taskID, query, sessionID)
	}()

	select {
	case result := <-done:
		return result, true
	case <-time.After(deadline):
		p.logger.Info("deadline exceeded, continuing in background",
			"task_id", taskID, "deadline", deadline)
		return nil, false
	}
}

// runPipeline executes the full pipeline for one task. It always returns a
// result: failures, including panics in handler code, become a failed task
// with an apologetic response.
func (p *Processor) runPipeline(ctx context.Context, taskID, query, sessionID string) (result *ai.Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic in pipeline: %v", r)
			result = p.failTask(ctx, taskID, query, err)
		}
	}()

	p.tasks.Update(taskID, domain.TaskStatusProcessing, "", "")
	p.emit(ctx, events.NewTaskEvent(events.TaskStarted, taskID, query))

	d := p.router.Classify(ctx, query)
	p.logger.Info("query classified", "task_id", taskID, "domain", d)

	history := p.history(sessionID)

	aiResult, taskRecords, err := p.handleDomain(ctx, d, query, history)
	if err != nil {
		return p.failTask(ctx, taskID, query, err)
	}

	responseText := p.executeActions(ctx, d, aiResult, taskRecords)
	aiResult.Response = responseText

	p.tasks.Update(taskID, domain.TaskStatusCompleted, responseText, "")
	p.recordTurn(sessionID, query, responseText, d)

	event := events.NewTaskEvent(events.TaskCompleted, taskID, query)
	event.Domain = string(d)
	event.Detail = aiResult.Intent
	p.emit(ctx, event)

	p.logger.Info("task completed", "task_id", taskID, "intent", aiResult.Intent)
	return aiResult
}

// handleDomain fetches the domain's external context and calls its handler.
// For the tasks domain the fetched task records are returned so the action
// executor can reuse them without a second fetch.
func (p *Processor) handleDomain(
	ctx context.Context,
	d domain.Domain,
	query string,
	history []domain.ConversationTurn,
) (*ai.Result, []domain.TaskRecord, error) {
	switch d {
	case domain.DomainTasks:
		records, err := p.data.ActiveTasks(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch task context: %w", err)
		}
		tctx := domain.TaskContext{
			Areas:    p.areas,
			Projects: p.projects,
			Tasks:    records,
		}
		result, err := p.ai.HandleTasks(ctx, query, tctx, history)
		return result, records, err

	case domain.DomainContacts:
		contacts, err := p.data.Contacts(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch contact context: %w", err)
		}
		p.enrichContacts(ctx, query, contacts)
		result, err := p.ai.HandleContacts(ctx, query, domain.ContactContext{Contacts: contacts}, history)
		return result, nil, err

	default:
		result, err := p.ai.HandleGeneral(ctx, query, history)
		return result, nil, err
	}
}

// failTask marks the task failed and builds the error result.
func (p *Processor) failTask(ctx context.Context, taskID, query string, err error) *ai.Result {
	p.logger.Error("task failed", "task_id", taskID, "error", err)

	msg := fmt.Sprintf("Hubo un error procesando tu solicitud: %v", err)
	p.tasks.Update(taskID, domain.TaskStatusFailed, msg, err.Error())

	event := events.NewTaskEvent(events.TaskFailed, taskID, query)
	event.Detail = err.Error()
	p.emit(ctx, event)

	return &ai.Result{Intent: "error", Response: msg}
}

func (p *Processor) history(sessionID string) []domain.ConversationTurn {
	if sessionID == "" {
		return nil
	}
	return p.sessions.History(sessionID)
}

func (p *Processor) recordTurn(sessionID, query, response string, d domain.Domain) {
	if sessionID == "" {
		return
	}
	p.sessions.AddTurn(sessionID, query, response, d)
}

func (p *Processor) emit(ctx context.Context, event *events.TaskEvent) {
	if p.emitter == nil {
		return
	}
	if err := p.emitter.EmitEvent(ctx, event); err != nil {
		p.logger.Warn("event emission failed", "event_type", event.Type, "error", err)
	}
}

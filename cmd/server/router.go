package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jpcarmona/atenea/internal/api"
	apiMiddleware "github.com/jpcarmona/atenea/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	defaultTimeout := time.Duration(app.config.Processor.DefaultTimeoutSeconds * float64(time.Second))
	queryHandler := api.NewQueryHandler(
		app.processor,
		app.aiHandler,
		app.tasks,
		app.emitter,
		defaultTimeout,
		app.logger,
	)
	statsHandler := api.NewStatsHandler(app.tasks, app.sessions)

	r.Post("/query", queryHandler.HandleQuery)
	r.Get("/", statsHandler.HandleRoot)
	r.Get("/stats", statsHandler.HandleStats)
	r.Get("/health", statsHandler.HandleHealth)

	return r
}

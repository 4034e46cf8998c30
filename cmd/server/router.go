package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/draftforge/draftforge-api/internal/api"
	apiMiddleware "github.com/draftforge/draftforge-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	documentHandler := api.NewDocumentHandler(
		app.documentService,
		app.jobFactory,
		app.jobRunner,
		app.logger,
	)
	jobHandler := api.NewJobHandler(app.jobStore, app.logger)
	healthHandler := api.NewHealthHandler(app.db, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Document endpoints
		r.Post("/documents/generate", documentHandler.GenerateDocument)
		r.Get("/documents/{id}", documentHandler.GetDocument)
		r.Get("/documents", documentHandler.ListDocuments)

		// Job status endpoint
		r.Get("/jobs/{id}", jobHandler.GetJob)
	})

	// Health check endpoint
	r.Get("/healthz", healthHandler.Check)

	return r
}

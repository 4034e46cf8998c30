package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/config"
	"github.com/draftforge/draftforge-api/internal/events"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/platform"
	"github.com/draftforge/draftforge-api/internal/platform/postgres"
	"github.com/draftforge/draftforge-api/internal/service"
	"github.com/draftforge/draftforge-api/internal/store"
	"github.com/draftforge/draftforge-api/internal/task"
)

// JobAuditHandler is an event handler that writes an audit log entry for
// every job status transition.
type JobAuditHandler struct {
	logger *slog.Logger
}

// HandleEvent processes job lifecycle events by logging them.
func (h *JobAuditHandler) HandleEvent(_ context.Context, event *events.JobLifecycleEvent) error {
	attrs := []any{
		"event_id", event.ID.String(),
		"job_id", event.JobID.String(),
		"job_type", event.JobType,
		"status", event.Status,
	}
	if event.DocumentID != uuid.Nil {
		attrs = append(attrs, "document_id", event.DocumentID.String())
	}
	if event.Error != "" {
		attrs = append(attrs, "error", event.Error)
	}

	h.logger.Info("job status transition", attrs...)
	return nil
}

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	templateStore store.TemplateStore
	profileStore  store.ProfileStore
	documentStore store.DocumentStore
	jobStore      task.JobStore

	// Service interfaces
	documentService service.DocumentService

	// Background job handling
	jobFactory *task.GenerationJobFactory
	jobRunner  *task.JobRunner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.templateStore = postgres.NewTemplateStore(db, logger)
	app.profileStore = postgres.NewProfileStore(db, logger)
	app.documentStore = postgres.NewDocumentStore(db, logger)
	app.jobStore = postgres.NewJobStore(db, logger)

	// Initialize the document service. Provider credentials come from the
	// environment; each generation session snapshots the active profiles
	// and builds its own provider gateway.
	app.documentService = service.NewDocumentService(
		app.profileStore,
		app.templateStore,
		app.documentStore,
		generation.EnvCredentialSource{},
		platform.NewProviderFactory(),
		logger,
	)
	logger.Info("Document service initialized")

	// Initialize background job processing
	app.jobFactory = task.NewGenerationJobFactory(app.documentService, logger)
	if err := setupJobRunner(app); err != nil {
		return nil, fmt.Errorf("failed to setup job runner: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupJobRunner initializes and starts the background job processor. It
// also recovers jobs left pending or processing by a previous run.
func setupJobRunner(app *application) error {
	app.jobRunner = task.NewJobRunner(app.jobStore, app.jobFactory, task.JobRunnerConfig{
		WorkerCount: app.config.Task.WorkerCount,
		QueueSize:   app.config.Task.QueueSize,
	}, app.logger)

	// Audit every job status transition through the event emitter
	emitter := events.NewInMemoryEventEmitter(app.logger)
	emitter.RegisterHandler(&JobAuditHandler{
		logger: app.logger.With(slog.String("component", "job_audit")),
	})
	app.jobRunner.SetEventEmitter(emitter)

	if err := app.jobRunner.Start(); err != nil {
		return fmt.Errorf("failed to start job runner: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.jobRunner != nil {
		app.jobRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

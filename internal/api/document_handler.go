// Package api provides HTTP handlers for the API.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/api/shared"
	"github.com/draftforge/draftforge-api/internal/platform/logger"
	"github.com/draftforge/draftforge-api/internal/service"
	"github.com/draftforge/draftforge-api/internal/task"
)

// JobSubmitter persists and enqueues background jobs. Implemented by
// task.JobRunner.
type JobSubmitter interface {
	Submit(ctx context.Context, job task.Job) error
}

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	documents  service.DocumentService
	jobFactory *task.GenerationJobFactory
	runner     JobSubmitter
	logger     *slog.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(
	documents service.DocumentService,
	jobFactory *task.GenerationJobFactory,
	runner JobSubmitter,
	logger *slog.Logger,
) *DocumentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DocumentHandler")
	}

	return &DocumentHandler{
		documents:  documents,
		jobFactory: jobFactory,
		runner:     runner,
		logger:     logger.With(slog.String("component", "document_handler")),
	}
}

// GenerateDocument handles POST /documents/generate requests. A session
// can take minutes, so the request is accepted and run in the background;
// the response carries the job ID to poll.
func (h *DocumentHandler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateDocumentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode generation request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		log.Debug("generation request failed validation", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	domainReq := req.ToDomain()
	if err := domainReq.Validate(); err != nil {
		log.Debug("generation request failed domain validation",
			slog.String("error", err.Error()),
			slog.String("content_type", req.ContentType))
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.jobFactory.NewJob(*domainReq)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create generation job", err)
		return
	}

	if err := h.runner.Submit(r.Context(), job); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to submit generation job", err)
		return
	}

	log.Info("generation job accepted",
		slog.String("job_id", job.ID().String()),
		slog.String("content_type", req.ContentType),
		slog.String("actor_id", req.ActorID.String()))

	shared.RespondWithJSON(w, r, http.StatusAccepted, GenerateDocumentResponse{
		JobID:  job.ID(),
		Status: string(task.JobStatusPending),
	})
}

// GetDocument handles GET /documents/{id} requests.
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documents.GetDocument(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("retrieved document", slog.String("document_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, documentToResponse(doc))
}

// ListDocuments handles GET /documents requests. The actor_id query
// parameter is required; limit and offset paginate the result.
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	actorID, err := uuid.Parse(r.URL.Query().Get("actor_id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "actor_id query parameter must be a valid UUID")
		return
	}

	limit := queryInt(r, "limit", 20, 100)
	offset := queryInt(r, "offset", 0, 1<<30)

	docs, err := h.documents.ListDocuments(r.Context(), actorID, limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, documentToResponse(doc))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/api/shared"
	"github.com/draftforge/draftforge-api/internal/platform/logger"
	"github.com/draftforge/draftforge-api/internal/task"
)

// JobHandler handles job status HTTP requests
type JobHandler struct {
	jobs   task.JobStore
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobs task.JobStore, logger *slog.Logger) *JobHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for JobHandler")
	}

	return &JobHandler{
		jobs:   jobs,
		logger: logger.With(slog.String("component", "job_handler")),
	}
}

// GetJob handles GET /jobs/{id} requests. It reports the job's current
// status and, once completed, the ID of the produced document.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := JobStatusResponse{
		JobID:        record.ID,
		Type:         record.Type,
		Status:       string(record.Status),
		ErrorMessage: record.ErrorMessage,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
	if record.DocumentID != uuid.Nil {
		docID := record.DocumentID
		response.DocumentID = &docID
	}

	log.Debug("retrieved job status",
		slog.String("job_id", id.String()),
		slog.String("status", string(record.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

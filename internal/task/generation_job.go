package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// DocumentGenerator runs one full generation session and persists the
// result. Implemented by the service layer.
type DocumentGenerator interface {
	GenerateDocument(ctx context.Context, req *domain.GenerationRequest) (*domain.GeneratedDocument, error)
}

// GenerationJob is a background job wrapping one document generation
// session. The payload is the JSON-encoded generation request, so a job
// interrupted by a crash can be rehydrated and re-run from scratch (a
// session has no partial-success state worth resuming).
type GenerationJob struct {
	id         uuid.UUID
	request    domain.GenerationRequest
	generator  DocumentGenerator
	logger     *slog.Logger
	documentID uuid.UUID
}

// NewGenerationJob creates a job for the given request.
func NewGenerationJob(
	req domain.GenerationRequest,
	generator DocumentGenerator,
	logger *slog.Logger,
) (*GenerationJob, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation request: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &GenerationJob{
		id:        uuid.New(),
		request:   req,
		generator: generator,
		logger:    logger,
	}, nil
}

// ID implements Job.
func (j *GenerationJob) ID() uuid.UUID {
	return j.id
}

// Type implements Job.
func (j *GenerationJob) Type() string {
	return JobTypeDocumentGeneration
}

// Payload implements Job.
func (j *GenerationJob) Payload() []byte {
	data, err := json.Marshal(j.request)
	if err != nil {
		// A validated request always marshals; this guards programmer error.
		j.logger.Error("failed to marshal generation request payload",
			slog.String("job_id", j.id.String()),
			slog.String("error", err.Error()))
		return nil
	}
	return data
}

// Status implements Job. The runner owns persisted status transitions; an
// in-memory job is always pending until executed.
func (j *GenerationJob) Status() JobStatus {
	return JobStatusPending
}

// DocumentID implements ResultCarrier: the ID of the document produced by
// a successful execution.
func (j *GenerationJob) DocumentID() uuid.UUID {
	return j.documentID
}

// Execute implements Job: it runs the full generation session and records
// the produced document ID.
func (j *GenerationJob) Execute(ctx context.Context) error {
	doc, err := j.generator.GenerateDocument(ctx, &j.request)
	if err != nil {
		return err
	}

	j.documentID = doc.ID
	return nil
}

// GenerationJobFactory creates and rehydrates generation jobs.
type GenerationJobFactory struct {
	generator DocumentGenerator
	logger    *slog.Logger
}

// NewGenerationJobFactory creates a GenerationJobFactory.
func NewGenerationJobFactory(generator DocumentGenerator, logger *slog.Logger) *GenerationJobFactory {
	if logger == nil {
		logger = slog.Default()
	}

	return &GenerationJobFactory{generator: generator, logger: logger}
}

// NewJob creates a fresh job for the given request.
func (f *GenerationJobFactory) NewJob(req domain.GenerationRequest) (*GenerationJob, error) {
	return NewGenerationJob(req, f.generator, f.logger)
}

// Rehydrate implements JobFactory: it reconstructs an executable job from
// a persisted record.
func (f *GenerationJobFactory) Rehydrate(record *JobRecord) (Job, error) {
	if record.Type != JobTypeDocumentGeneration {
		return nil, fmt.Errorf("unknown job type %q", record.Type)
	}

	var req domain.GenerationRequest
	if err := json.Unmarshal(record.Payload, &req); err != nil {
		return nil, fmt.Errorf("failed to decode job payload: %w", err)
	}

	job, err := NewGenerationJob(req, f.generator, f.logger)
	if err != nil {
		return nil, err
	}

	// Keep the persisted identity so status updates land on the original
	// record.
	job.id = record.ID
	return job, nil
}

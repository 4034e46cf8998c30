package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the current state of a job
type JobStatus string

// Possible job status values
const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job type constants
const (
	// JobTypeDocumentGeneration represents a full document generation session
	JobTypeDocumentGeneration = "document_generation"
)

// Job represents a unit of background work to be processed
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier
	Type() string

	// Payload returns the job data as a byte slice
	Payload() []byte

	// Status returns the current job status
	Status() JobStatus

	// Execute runs the job logic
	Execute(ctx context.Context) error
}

// JobRecord is the persisted view of a job, as read back from the store.
type JobRecord struct {
	ID           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	Payload      []byte    `json:"payload"`
	Status       JobStatus `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DocumentID   uuid.UUID `json:"document_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobStore defines the interface for persisting jobs
type JobStore interface {
	// SaveJob persists a new job record
	SaveJob(ctx context.Context, job Job) error

	// UpdateJobStatus updates the status of a job, recording the error
	// message on failure and the produced document ID on success
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status JobStatus, errorMsg string, documentID uuid.UUID) error

	// GetJob retrieves a persisted job record by ID
	GetJob(ctx context.Context, jobID uuid.UUID) (*JobRecord, error)

	// GetPendingJobs retrieves all jobs with "pending" status
	GetPendingJobs(ctx context.Context) ([]*JobRecord, error)

	// GetProcessingJobs retrieves jobs with "processing" status. If
	// olderThan is non-zero, only jobs that have been in this state longer
	// than the given duration are returned.
	GetProcessingJobs(ctx context.Context, olderThan time.Duration) ([]*JobRecord, error)
}

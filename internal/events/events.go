package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobLifecycleEvent represents one status transition of a background job.
// It carries enough information for handlers to act without reaching back
// into the job store.
type JobLifecycleEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// JobID identifies the job that changed status
	JobID uuid.UUID `json:"job_id"`

	// JobType is the type identifier of the job
	JobType string `json:"job_type"`

	// Status is the status the job transitioned to
	Status string `json:"status"`

	// DocumentID is the produced document, set on successful completion
	DocumentID uuid.UUID `json:"document_id,omitempty"`

	// Error is the failure message, set when the job failed
	Error string `json:"error,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewJobLifecycleEvent creates an event for the given job transition.
func NewJobLifecycleEvent(jobID uuid.UUID, jobType, status string) *JobLifecycleEvent {
	return &JobLifecycleEvent{
		ID:        uuid.New(),
		JobID:     jobID,
		JobType:   jobType,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *JobLifecycleEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the job runner to publish transitions without direct
// knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *JobLifecycleEvent) error
}

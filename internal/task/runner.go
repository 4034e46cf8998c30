package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/events"
)

// JobRunnerConfig holds configuration for the job runner
type JobRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process jobs
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue
	QueueSize int
}

// DefaultJobRunnerConfig returns a JobRunnerConfig with reasonable defaults
func DefaultJobRunnerConfig() JobRunnerConfig {
	return JobRunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// JobFactory rehydrates an executable job from its persisted record. The
// runner uses it during crash recovery to requeue unfinished work.
type JobFactory interface {
	Rehydrate(record *JobRecord) (Job, error)
}

// ResultCarrier is implemented by jobs that produce a document; the runner
// records the document ID on the job record when the job completes.
type ResultCarrier interface {
	DocumentID() uuid.UUID
}

// JobRunner manages background job processing
type JobRunner struct {
	store      JobStore
	factory    JobFactory
	jobChan    chan Job
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     JobRunnerConfig
	logger     *slog.Logger
	emitter    events.EventEmitter
}

// NewJobRunner creates a new JobRunner
func NewJobRunner(store JobStore, factory JobFactory, config JobRunnerConfig, logger *slog.Logger) *JobRunner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultJobRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultJobRunnerConfig().QueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &JobRunner{
		store:      store,
		factory:    factory,
		jobChan:    make(chan Job, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "job_runner")),
	}
}

// SetEventEmitter wires an emitter that receives a JobLifecycleEvent on
// every status transition. Must be called before Start.
func (r *JobRunner) SetEventEmitter(emitter events.EventEmitter) {
	r.emitter = emitter
}

// emitTransition publishes a job status change to the configured emitter,
// if any. Emission failures are logged, never propagated: event delivery
// must not affect job processing.
func (r *JobRunner) emitTransition(ctx context.Context, job Job, status JobStatus, errMsg string, documentID uuid.UUID) {
	if r.emitter == nil {
		return
	}

	event := events.NewJobLifecycleEvent(job.ID(), job.Type(), string(status))
	event.Error = errMsg
	event.DocumentID = documentID

	if err := r.emitter.EmitEvent(ctx, event); err != nil {
		r.logger.Error("failed to emit job lifecycle event",
			slog.String("job_id", job.ID().String()),
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
	}
}

// Submit persists a new job and adds it to the processing queue
func (r *JobRunner) Submit(ctx context.Context, job Job) error {
	if r.ctx.Err() != nil {
		return fmt.Errorf("job runner is stopped")
	}

	// Save job to the store first so a crash between submit and execution
	// is recoverable
	if err := r.store.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}

	select {
	case r.jobChan <- job:
		return nil
	default:
		return fmt.Errorf("job queue is full, try again later")
	}
}

// Start recovers unfinished jobs and begins processing with the worker pool
func (r *JobRunner) Start() error {
	if err := r.recover(); err != nil {
		return fmt.Errorf("failed to recover jobs: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	return nil
}

// Stop gracefully shuts down the job runner. The queue channel is left
// open: a handler may still be inside Submit, and a send on a closed
// channel panics. Submit refuses new work once the runner context is
// canceled, and any jobs left in the buffer are requeued from the store
// on the next start.
func (r *JobRunner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
}

// recover requeues jobs left unfinished by a previous run
func (r *JobRunner) recover() error {
	ctx := context.Background()

	pending, err := r.store.GetPendingJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending jobs: %w", err)
	}

	// Jobs stuck in "processing" were interrupted by a crash; reset and
	// requeue them
	processing, err := r.store.GetProcessingJobs(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get processing jobs: %w", err)
	}

	r.logger.Info("recovering unfinished jobs",
		slog.Int("pending_count", len(pending)),
		slog.Int("processing_count", len(processing)))

	for _, record := range processing {
		if err := r.store.UpdateJobStatus(ctx, record.ID, JobStatusPending, "reset after recovery", uuid.Nil); err != nil {
			r.logger.Error("failed to reset processing job",
				slog.String("job_id", record.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		pending = append(pending, record)
	}

	for _, record := range pending {
		job, err := r.factory.Rehydrate(record)
		if err != nil {
			r.logger.Error("failed to rehydrate job, marking failed",
				slog.String("job_id", record.ID.String()),
				slog.String("error", err.Error()))
			_ = r.store.UpdateJobStatus(ctx, record.ID, JobStatusFailed, err.Error(), uuid.Nil)
			continue
		}

		select {
		case r.jobChan <- job:
		default:
			r.logger.Error("failed to requeue job, queue is full",
				slog.String("job_id", record.ID.String()))
		}
	}

	return nil
}

// worker processes jobs from the queue
func (r *JobRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", slog.Int("worker_id", id))

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", slog.Int("worker_id", id))
			return

		case job := <-r.jobChan:
			r.processJob(job, id)
		}
	}
}

// processJob handles execution of a single job
func (r *JobRunner) processJob(job Job, workerID int) {
	ctx := context.Background()
	logger := r.logger.With(
		slog.String("job_id", job.ID().String()),
		slog.String("job_type", job.Type()),
		slog.Int("worker_id", workerID),
	)

	if err := r.store.UpdateJobStatus(ctx, job.ID(), JobStatusProcessing, "", uuid.Nil); err != nil {
		logger.Error("failed to update job status to processing", slog.String("error", err.Error()))
		return
	}

	logger.Info("processing job")
	r.emitTransition(ctx, job, JobStatusProcessing, "", uuid.Nil)

	err := job.Execute(r.ctx)
	if err != nil {
		logger.Error("job execution failed", slog.String("error", err.Error()))
		if updateErr := r.store.UpdateJobStatus(ctx, job.ID(), JobStatusFailed, err.Error(), uuid.Nil); updateErr != nil {
			logger.Error("failed to update job status to failed", slog.String("error", updateErr.Error()))
		}
		r.emitTransition(ctx, job, JobStatusFailed, err.Error(), uuid.Nil)
		return
	}

	documentID := uuid.Nil
	if carrier, ok := job.(ResultCarrier); ok {
		documentID = carrier.DocumentID()
	}

	logger.Info("job completed successfully", slog.String("document_id", documentID.String()))
	if updateErr := r.store.UpdateJobStatus(ctx, job.ID(), JobStatusCompleted, "", documentID); updateErr != nil {
		logger.Error("failed to update job status to completed", slog.String("error", updateErr.Error()))
	}
	r.emitTransition(ctx, job, JobStatusCompleted, "", documentID)
}

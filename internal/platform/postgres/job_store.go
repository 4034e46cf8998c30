package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/platform/logger"
	"github.com/draftforge/draftforge-api/internal/store"
	"github.com/draftforge/draftforge-api/internal/task"
)

// JobStore implements the task.JobStore interface using a PostgreSQL
// database as the storage backend, giving the job runner durable state
// that survives process restarts.
type JobStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewJobStore creates a new PostgreSQL implementation of the
// task.JobStore interface. If logger is nil, a default logger will be
// used.
func NewJobStore(db store.DBTX, logger *slog.Logger) *JobStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &JobStore{
		db:     db,
		logger: logger.With(slog.String("component", "job_store")),
	}
}

// Ensure JobStore implements task.JobStore
var _ task.JobStore = (*JobStore)(nil)

// SaveJob implements task.JobStore.SaveJob.
func (s *JobStore) SaveJob(ctx context.Context, job task.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO generation_jobs (id, type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := s.db.ExecContext(ctx, query, job.ID(), job.Type(), job.Payload(), job.Status())
	if err != nil {
		log.Error("failed to save job",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID().String()))
		return store.NewStoreError("job", "save", "insert failed", err)
	}

	return nil
}

// UpdateJobStatus implements task.JobStore.UpdateJobStatus. The error
// message is recorded on failure and the produced document ID on success;
// either may be zero-valued.
func (s *JobStore) UpdateJobStatus(
	ctx context.Context,
	jobID uuid.UUID,
	status task.JobStatus,
	errorMsg string,
	documentID uuid.UUID,
) error {
	var docID any
	if documentID != uuid.Nil {
		docID = documentID
	}

	query := `
		UPDATE generation_jobs
		SET status = $2, error_message = $3, document_id = $4, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, jobID, status, errorMsg, docID)
	if err != nil {
		return store.NewStoreError("job", "update", "exec failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %s", store.ErrJobNotFound, jobID)
	}

	return nil
}

// GetJob implements task.JobStore.GetJob.
func (s *JobStore) GetJob(ctx context.Context, jobID uuid.UUID) (*task.JobRecord, error) {
	query := `
		SELECT id, type, payload, status, error_message, document_id, created_at, updated_at
		FROM generation_jobs
		WHERE id = $1
	`

	record, err := scanJob(s.db.QueryRowContext(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", store.ErrJobNotFound, jobID)
		}
		return nil, store.NewStoreError("job", "get", "query failed", err)
	}

	return record, nil
}

// GetPendingJobs implements task.JobStore.GetPendingJobs.
func (s *JobStore) GetPendingJobs(ctx context.Context) ([]*task.JobRecord, error) {
	query := `
		SELECT id, type, payload, status, error_message, document_id, created_at, updated_at
		FROM generation_jobs
		WHERE status = $1
		ORDER BY created_at
	`

	return s.queryJobs(ctx, query, task.JobStatusPending)
}

// GetProcessingJobs implements task.JobStore.GetProcessingJobs.
func (s *JobStore) GetProcessingJobs(ctx context.Context, olderThan time.Duration) ([]*task.JobRecord, error) {
	if olderThan > 0 {
		query := `
			SELECT id, type, payload, status, error_message, document_id, created_at, updated_at
			FROM generation_jobs
			WHERE status = $1 AND updated_at < NOW() - $2::interval
			ORDER BY created_at
		`
		return s.queryJobs(ctx, query, task.JobStatusProcessing, olderThan.String())
	}

	query := `
		SELECT id, type, payload, status, error_message, document_id, created_at, updated_at
		FROM generation_jobs
		WHERE status = $1
		ORDER BY created_at
	`
	return s.queryJobs(ctx, query, task.JobStatusProcessing)
}

func (s *JobStore) queryJobs(ctx context.Context, query string, args ...any) ([]*task.JobRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("job", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*task.JobRecord
	for rows.Next() {
		record, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job rows: %w", err)
	}

	return records, nil
}

func scanJob(row rowScanner) (*task.JobRecord, error) {
	var (
		record   task.JobRecord
		errorMsg sql.NullString
		docID    uuid.NullUUID
	)

	err := row.Scan(
		&record.ID, &record.Type, &record.Payload, &record.Status,
		&errorMsg, &docID, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ErrorMessage = errorMsg.String
	if docID.Valid {
		record.DocumentID = docID.UUID
	}

	return &record, nil
}

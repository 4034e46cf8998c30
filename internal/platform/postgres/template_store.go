// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/platform/logger"
	"github.com/draftforge/draftforge-api/internal/store"
)

// PostgreSQL error codes
const pgUniqueViolationCode = "23505"

// TemplateStore implements the store.TemplateStore interface using a
// PostgreSQL database as the storage backend.
type TemplateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTemplateStore creates a new PostgreSQL implementation of the
// store.TemplateStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller. If
// logger is nil, a default logger will be used.
func NewTemplateStore(db store.DBTX, logger *slog.Logger) *TemplateStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TemplateStore{
		db:     db,
		logger: logger.With(slog.String("component", "template_store")),
	}
}

// Ensure TemplateStore implements store.TemplateStore
var _ store.TemplateStore = (*TemplateStore)(nil)

// GetByCode implements store.TemplateStore.GetByCode.
func (s *TemplateStore) GetByCode(ctx context.Context, code string) (*domain.PromptTemplate, error) {
	query := `
		SELECT id, code, content, required_variables, content_type, active, created_at, updated_at
		FROM prompt_templates
		WHERE code = $1 AND active = TRUE
	`

	tmpl, err := scanTemplate(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: code %s", store.ErrTemplateNotFound, code)
		}
		return nil, store.NewStoreError("template", "get", "query failed", err)
	}

	return tmpl, nil
}

// ListByContentType implements store.TemplateStore.ListByContentType.
func (s *TemplateStore) ListByContentType(
	ctx context.Context,
	contentType domain.ContentType,
) ([]*domain.PromptTemplate, error) {
	query := `
		SELECT id, code, content, required_variables, content_type, active, created_at, updated_at
		FROM prompt_templates
		WHERE content_type = $1 AND active = TRUE
		ORDER BY code
	`

	rows, err := s.db.QueryContext(ctx, query, contentType)
	if err != nil {
		return nil, store.NewStoreError("template", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var templates []*domain.PromptTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templates = append(templates, tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate template rows: %w", err)
	}

	return templates, nil
}

// Create implements store.TemplateStore.Create.
func (s *TemplateStore) Create(ctx context.Context, tmpl *domain.PromptTemplate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tmpl.Validate(); err != nil {
		log.Warn("template validation failed during create",
			slog.String("error", err.Error()),
			slog.String("template_code", tmpl.Code))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	vars, err := json.Marshal(tmpl.RequiredVariables)
	if err != nil {
		return fmt.Errorf("failed to marshal required variables: %w", err)
	}

	query := `
		INSERT INTO prompt_templates (id, code, content, required_variables, content_type, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.Code, tmpl.Content, vars, tmpl.ContentType,
		tmpl.Active, tmpl.CreatedAt, tmpl.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return fmt.Errorf("%w: %s", store.ErrTemplateCodeExists, tmpl.Code)
		}
		return store.NewStoreError("template", "create", "insert failed", err)
	}

	return nil
}

// Update implements store.TemplateStore.Update.
func (s *TemplateStore) Update(ctx context.Context, tmpl *domain.PromptTemplate) error {
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	vars, err := json.Marshal(tmpl.RequiredVariables)
	if err != nil {
		return fmt.Errorf("failed to marshal required variables: %w", err)
	}

	query := `
		UPDATE prompt_templates
		SET code = $2, content = $3, required_variables = $4, content_type = $5, active = $6, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.Code, tmpl.Content, vars, tmpl.ContentType, tmpl.Active,
	)
	if err != nil {
		return store.NewStoreError("template", "update", "exec failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %s", store.ErrTemplateNotFound, tmpl.ID)
	}

	return nil
}

// Delete implements store.TemplateStore.Delete.
func (s *TemplateStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM prompt_templates WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("template", "delete", "exec failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %s", store.ErrTemplateNotFound, id)
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.PromptTemplate, error) {
	var (
		tmpl domain.PromptTemplate
		vars []byte
	)

	err := row.Scan(
		&tmpl.ID, &tmpl.Code, &tmpl.Content, &vars, &tmpl.ContentType,
		&tmpl.Active, &tmpl.CreatedAt, &tmpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(vars) > 0 {
		if err := json.Unmarshal(vars, &tmpl.RequiredVariables); err != nil {
			return nil, fmt.Errorf("failed to unmarshal required variables: %w", err)
		}
	}

	return &tmpl, nil
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/platform/logger"
	"github.com/draftforge/draftforge-api/internal/store"
)

// DocumentStore implements the store.DocumentStore interface using a
// PostgreSQL database as the storage backend.
type DocumentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDocumentStore creates a new PostgreSQL implementation of the
// store.DocumentStore interface. If logger is nil, a default logger will
// be used.
func NewDocumentStore(db store.DBTX, logger *slog.Logger) *DocumentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DocumentStore{
		db:     db,
		logger: logger.With(slog.String("component", "document_store")),
	}
}

// Ensure DocumentStore implements store.DocumentStore
var _ store.DocumentStore = (*DocumentStore)(nil)

const documentColumns = `id, actor_id, title, content_type, introduction, sections,
	conclusion, product_records, markdown, html,
	input_tokens, output_tokens, total_tokens, cost, estimated_usage,
	provider_used, model_used, elapsed_seconds, created_at`

// Save implements store.DocumentStore.Save.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.GeneratedDocument) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := doc.Validate(); err != nil {
		log.Warn("document validation failed during save",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	sections, err := json.Marshal(doc.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	records, err := json.Marshal(doc.ProductRecords)
	if err != nil {
		return fmt.Errorf("failed to marshal product records: %w", err)
	}

	query := `
		INSERT INTO generated_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err = s.db.ExecContext(ctx, query,
		doc.ID, doc.ActorID, doc.Title, doc.ContentType, doc.Introduction, sections,
		doc.Conclusion, records, doc.Markdown, doc.HTML,
		doc.Usage.InputTokens, doc.Usage.OutputTokens, doc.Usage.TotalTokens,
		doc.Cost, doc.EstimatedUsage,
		doc.ProviderUsed, doc.ModelUsed, doc.ElapsedSeconds, doc.CreatedAt,
	)
	if err != nil {
		return store.NewStoreError("document", "save", "insert failed", err)
	}

	return nil
}

// GetByID implements store.DocumentStore.GetByID.
func (s *DocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM generated_documents
		WHERE id = $1
	`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", store.ErrDocumentNotFound, id)
		}
		return nil, store.NewStoreError("document", "get", "query failed", err)
	}

	return doc, nil
}

// ListByActor implements store.DocumentStore.ListByActor.
func (s *DocumentStore) ListByActor(
	ctx context.Context,
	actorID uuid.UUID,
	limit, offset int,
) ([]*domain.GeneratedDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM generated_documents
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, actorID, limit, offset)
	if err != nil {
		return nil, store.NewStoreError("document", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*domain.GeneratedDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}

	return docs, nil
}

func scanDocument(row rowScanner) (*domain.GeneratedDocument, error) {
	var (
		doc      domain.GeneratedDocument
		sections []byte
		records  []byte
	)

	err := row.Scan(
		&doc.ID, &doc.ActorID, &doc.Title, &doc.ContentType, &doc.Introduction, &sections,
		&doc.Conclusion, &records, &doc.Markdown, &doc.HTML,
		&doc.Usage.InputTokens, &doc.Usage.OutputTokens, &doc.Usage.TotalTokens,
		&doc.Cost, &doc.EstimatedUsage,
		&doc.ProviderUsed, &doc.ModelUsed, &doc.ElapsedSeconds, &doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &doc.Sections); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
		}
	}

	if len(records) > 0 {
		if err := json.Unmarshal(records, &doc.ProductRecords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product records: %w", err)
		}
	}

	return &doc, nil
}

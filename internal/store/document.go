package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// DocumentStore defines the interface for generated document persistence.
// Documents are written exactly once, at the end of a fully successful
// session; there is no partial-save path.
type DocumentStore interface {
	// Save persists a complete generated document.
	Save(ctx context.Context, doc *domain.GeneratedDocument) error

	// GetByID retrieves a document by its unique ID.
	// Returns ErrDocumentNotFound if the document does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedDocument, error)

	// ListByActor retrieves documents attributed to the given actor,
	// newest first. Limit and offset paginate the result.
	ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]*domain.GeneratedDocument, error)
}

package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// TemplateStore defines the interface for prompt template persistence.
// The pipeline is a read-only consumer (GetByCode); the remaining methods
// serve the external admin surface.
type TemplateStore interface {
	// GetByCode retrieves the active template with the given code.
	// Returns ErrTemplateNotFound if no active template exists.
	GetByCode(ctx context.Context, code string) (*domain.PromptTemplate, error)

	// ListByContentType retrieves all active templates for a content type.
	ListByContentType(ctx context.Context, contentType domain.ContentType) ([]*domain.PromptTemplate, error)

	// Create saves a new template to the store.
	// Returns ErrTemplateCodeExists if an active template with the same
	// code already exists.
	Create(ctx context.Context, tmpl *domain.PromptTemplate) error

	// Update saves changes to an existing template.
	// Returns ErrTemplateNotFound if the template does not exist.
	Update(ctx context.Context, tmpl *domain.PromptTemplate) error

	// Delete removes a template by ID.
	// Returns ErrTemplateNotFound if the template does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

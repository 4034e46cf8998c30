package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/pipeline"
	"github.com/draftforge/draftforge-api/internal/store"
)

// DocumentService runs generation sessions and manages stored documents.
type DocumentService interface {
	// GenerateDocument executes one full generation session for the
	// request and persists the result. Callers receive either a complete
	// document or a single descriptive error; there is no partial result.
	GenerateDocument(ctx context.Context, req *domain.GenerationRequest) (*domain.GeneratedDocument, error)

	// GetDocument retrieves a stored document by ID.
	GetDocument(ctx context.Context, id uuid.UUID) (*domain.GeneratedDocument, error)

	// ListDocuments retrieves documents attributed to an actor, newest
	// first.
	ListDocuments(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]*domain.GeneratedDocument, error)
}

// documentService is the production DocumentService implementation.
type documentService struct {
	profiles        store.ProfileStore
	documents       store.DocumentStore
	creds           generation.CredentialSource
	providerFactory generation.ProviderFactory
	orchestrator    *pipeline.Orchestrator
	logger          *slog.Logger
}

// NewDocumentService creates a DocumentService. The orchestrator is shared
// across sessions (it is stateless); each GenerateDocument call builds its
// own gateway so provider selection is snapshotted per session.
func NewDocumentService(
	profiles store.ProfileStore,
	templates store.TemplateStore,
	documents store.DocumentStore,
	creds generation.CredentialSource,
	providerFactory generation.ProviderFactory,
	logger *slog.Logger,
) DocumentService {
	if logger == nil {
		logger = slog.Default()
	}

	parser := pipeline.NewParser(logger)
	orchestrator := pipeline.NewOrchestrator(templateSourceAdapter{templates}, parser, logger)

	return &documentService{
		profiles:        profiles,
		documents:       documents,
		creds:           creds,
		providerFactory: providerFactory,
		orchestrator:    orchestrator,
		logger:          logger.With(slog.String("component", "document_service")),
	}
}

// GenerateDocument implements DocumentService.
func (s *documentService) GenerateDocument(
	ctx context.Context,
	req *domain.GenerationRequest,
) (*domain.GeneratedDocument, error) {
	if err := req.Validate(); err != nil {
		return nil, NewDocumentServiceError("generate_document", "invalid request", err)
	}

	// Session-scoped gateway: the profile selection is snapshotted here
	// and never re-read, so concurrent admin edits cannot produce
	// mid-session inconsistency.
	gateway := generation.NewGateway(
		profileSourceAdapter{s.profiles},
		s.creds,
		s.providerFactory,
		s.logger,
	)

	if err := gateway.Initialize(ctx); err != nil {
		return nil, NewDocumentServiceError("generate_document", "gateway initialization failed", err)
	}

	doc, err := s.orchestrator.Run(ctx, gateway, req)
	if err != nil {
		return nil, NewDocumentServiceError("generate_document", "session failed", err)
	}

	if err := s.documents.Save(ctx, doc); err != nil {
		return nil, NewDocumentServiceError("generate_document", "saving document failed", err)
	}

	return doc, nil
}

// GetDocument implements DocumentService.
func (s *documentService) GetDocument(
	ctx context.Context,
	id uuid.UUID,
) (*domain.GeneratedDocument, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, NewDocumentServiceError("get_document", "lookup failed", err)
	}
	return doc, nil
}

// ListDocuments implements DocumentService.
func (s *documentService) ListDocuments(
	ctx context.Context,
	actorID uuid.UUID,
	limit, offset int,
) ([]*domain.GeneratedDocument, error) {
	docs, err := s.documents.ListByActor(ctx, actorID, limit, offset)
	if err != nil {
		return nil, NewDocumentServiceError("list_documents", "listing failed", err)
	}
	return docs, nil
}

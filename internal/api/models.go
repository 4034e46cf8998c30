package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// Common request/response structures

// ProductInput is one reviewable item in a generation request.
type ProductInput struct {
	Name          string `json:"name"           validate:"required"`
	ImageRef      string `json:"image_ref,omitempty"`
	AffiliateLink string `json:"affiliate_link,omitempty"`
}

// OutlineSectionInput is one planned section for an article request.
type OutlineSectionInput struct {
	Title string `json:"title"          validate:"required"`
	Body  string `json:"body,omitempty"`
}

// GenerateDocumentRequest defines the payload for the document generation
// endpoint. Products are required for roundup and review content types,
// an outline for articles; the cross-field rules are enforced by domain
// validation after decoding.
type GenerateDocumentRequest struct {
	Title       string                `json:"title"        validate:"required,max=500"`
	ContentType string                `json:"content_type" validate:"required,oneof=roundup review article"`
	Products    []ProductInput        `json:"products,omitempty"`
	Outline     []OutlineSectionInput `json:"outline,omitempty"`
	ActorID     uuid.UUID             `json:"actor_id"     validate:"required"`
}

// ToDomain converts the request payload into a domain generation request.
func (r *GenerateDocumentRequest) ToDomain() *domain.GenerationRequest {
	req := &domain.GenerationRequest{
		Title:       r.Title,
		ContentType: domain.ContentType(r.ContentType),
		ActorID:     r.ActorID,
	}

	for _, p := range r.Products {
		req.Products = append(req.Products, domain.Product{
			Name:          p.Name,
			ImageRef:      p.ImageRef,
			AffiliateLink: p.AffiliateLink,
		})
	}

	for _, s := range r.Outline {
		req.Outline = append(req.Outline, domain.OutlineSection{
			Title: s.Title,
			Body:  s.Body,
		})
	}

	return req
}

// GenerateDocumentResponse defines the accepted response for the document
// generation endpoint. Generation runs in the background; poll the job
// endpoint for completion.
type GenerateDocumentResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// JobStatusResponse defines the response for the job status endpoint.
type JobStatusResponse struct {
	JobID        uuid.UUID  `json:"job_id"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	DocumentID   *uuid.UUID `json:"document_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DocumentResponse defines the response for the document retrieval
// endpoints.
type DocumentResponse struct {
	ID             uuid.UUID              `json:"id"`
	ActorID        uuid.UUID              `json:"actor_id"`
	Title          string                 `json:"title"`
	ContentType    string                 `json:"content_type"`
	Markdown       string                 `json:"markdown"`
	HTML           string                 `json:"html"`
	ProductRecords []domain.ProductRecord `json:"product_records,omitempty"`
	InputTokens    int                    `json:"input_tokens"`
	OutputTokens   int                    `json:"output_tokens"`
	TotalTokens    int                    `json:"total_tokens"`
	EstimatedUsage bool                   `json:"estimated_usage"`
	Cost           float64                `json:"cost"`
	ProviderUsed   string                 `json:"provider_used"`
	ModelUsed      string                 `json:"model_used"`
	ElapsedSeconds float64                `json:"elapsed_seconds"`
	CreatedAt      time.Time              `json:"created_at"`
}

// documentToResponse converts a domain document to its API representation.
func documentToResponse(doc *domain.GeneratedDocument) DocumentResponse {
	return DocumentResponse{
		ID:             doc.ID,
		ActorID:        doc.ActorID,
		Title:          doc.Title,
		ContentType:    string(doc.ContentType),
		Markdown:       doc.Markdown,
		HTML:           doc.HTML,
		ProductRecords: doc.ProductRecords,
		InputTokens:    doc.Usage.InputTokens,
		OutputTokens:   doc.Usage.OutputTokens,
		TotalTokens:    doc.Usage.TotalTokens,
		EstimatedUsage: doc.EstimatedUsage,
		Cost:           doc.Cost,
		ProviderUsed:   doc.ProviderUsed,
		ModelUsed:      doc.ModelUsed,
		ElapsedSeconds: doc.ElapsedSeconds,
		CreatedAt:      doc.CreatedAt,
	}
}

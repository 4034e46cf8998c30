package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Request-specific validation errors
var (
	// ErrRequestTitleEmpty is returned when a generation request has no title.
	ErrRequestTitleEmpty = errors.New("generation request title cannot be empty")

	// ErrRequestActorEmpty is returned when a generation request has no
	// requesting actor ID.
	ErrRequestActorEmpty = errors.New("generation request actor ID cannot be empty")

	// ErrRequestNoProducts is returned when a product content type is
	// requested without any products.
	ErrRequestNoProducts = errors.New("product content types require a non-empty product list")

	// ErrRequestNoOutline is returned when an article is requested without
	// an outline.
	ErrRequestNoOutline = errors.New("article content type requires a non-empty outline")

	// ErrProductNameEmpty is returned when a product entry has no name.
	ErrProductNameEmpty = errors.New("product name cannot be empty")

	// ErrOutlineTitleEmpty is returned when an outline entry has no title.
	ErrOutlineTitleEmpty = errors.New("outline section title cannot be empty")
)

// Product is one reviewable item in a product-type request.
type Product struct {
	Name          string `json:"name"`
	ImageRef      string `json:"image_ref,omitempty"`
	AffiliateLink string `json:"affiliate_link,omitempty"`
}

// Validate checks if the Product has valid data.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrProductNameEmpty
	}
	return nil
}

// OutlineSection is one planned section of the document, optionally with a
// short body describing what the section should cover.
type OutlineSection struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// Validate checks if the OutlineSection has valid data.
func (s *OutlineSection) Validate() error {
	if s.Title == "" {
		return ErrOutlineTitleEmpty
	}
	return nil
}

// GenerationRequest is the inbound description of a document to generate.
// ActorID identifies the requesting actor and is used only for attribution
// on the persisted result, never by the pipeline logic itself.
//
// Validity precondition: product content types require a non-empty Products
// list; the article type requires a non-empty Outline. Validation runs
// before any provider call so an invalid request incurs zero cost.
type GenerationRequest struct {
	Title       string           `json:"title"`
	ContentType ContentType      `json:"content_type"`
	Products    []Product        `json:"products,omitempty"`
	Outline     []OutlineSection `json:"outline,omitempty"`
	ActorID     uuid.UUID        `json:"actor_id"`
}

// Validate checks if the GenerationRequest satisfies its content-type
// preconditions.
func (r *GenerationRequest) Validate() error {
	if r.Title == "" {
		return ErrRequestTitleEmpty
	}

	if r.ActorID == uuid.Nil {
		return ErrRequestActorEmpty
	}

	if err := r.ContentType.Validate(); err != nil {
		return err
	}

	if r.ContentType.IsProductType() && len(r.Products) == 0 {
		return ErrRequestNoProducts
	}

	if r.ContentType == ContentTypeArticle && len(r.Outline) == 0 {
		return ErrRequestNoOutline
	}

	for i := range r.Products {
		if err := r.Products[i].Validate(); err != nil {
			return err
		}
	}

	for i := range r.Outline {
		if err := r.Outline[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Document-specific validation errors
var (
	// ErrDocumentTitleEmpty is returned when a generated document has no title.
	ErrDocumentTitleEmpty = errors.New("generated document title cannot be empty")

	// ErrDocumentIntroEmpty is returned when a generated document has no
	// introduction.
	ErrDocumentIntroEmpty = errors.New("generated document introduction cannot be empty")
)

// TokenUsage is the normalized token accounting reported by a provider
// adapter. TotalTokens is always InputTokens + OutputTokens.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add accumulates another usage sample into this one.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens = u.InputTokens + u.OutputTokens
}

// ParsedSection is the typed record recovered from a model's free-text
// product review. Pros and Cons always hold exactly the cardinality the
// content type demands; shortfalls are padded by the parser's filler policy
// and extras are dropped in encounter order.
type ParsedSection struct {
	Description string   `json:"description"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
}

// ProductRecord couples a requested product with its generated review
// fields for the final document.
type ProductRecord struct {
	Product
	Description string   `json:"description"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
}

// GeneratedDocument is the complete output of one successful generation
// session. It is created once, at the end of the session; a failed session
// never produces or persists a partial document.
type GeneratedDocument struct {
	ID             uuid.UUID       `json:"id"`
	ActorID        uuid.UUID       `json:"actor_id"`
	Title          string          `json:"title"`
	ContentType    ContentType     `json:"content_type"`
	Introduction   string          `json:"introduction"`
	Sections       []string        `json:"sections"`
	Conclusion     string          `json:"conclusion"`
	ProductRecords []ProductRecord `json:"product_records,omitempty"`
	Markdown       string          `json:"markdown"`
	HTML           string          `json:"html"`
	Usage          TokenUsage      `json:"usage"`
	Cost           float64         `json:"cost"`
	EstimatedUsage bool            `json:"estimated_usage"`
	ProviderUsed   string          `json:"provider_used"`
	ModelUsed      string          `json:"model_used"`
	ElapsedSeconds float64         `json:"elapsed_seconds"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Validate checks if the GeneratedDocument has valid data.
func (d *GeneratedDocument) Validate() error {
	if d.Title == "" {
		return ErrDocumentTitleEmpty
	}

	if d.Introduction == "" {
		return ErrDocumentIntroEmpty
	}

	return d.ContentType.Validate()
}

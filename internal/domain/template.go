package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Template-specific validation errors
var (
	// ErrTemplateCodeEmpty is returned when a template code is empty.
	ErrTemplateCodeEmpty = errors.New("template code cannot be empty")

	// ErrTemplateContentEmpty is returned when a template body is empty.
	ErrTemplateContentEmpty = errors.New("template content cannot be empty")
)

// PromptTemplate is a named, versioned prompt body with {name} placeholder
// slots. The pipeline is a read-only consumer: templates are authored by an
// external admin surface and looked up by code at generation time.
//
// RequiredVariables declares the placeholders the template expects. The
// compiler tolerates mismatches: a placeholder with no supplied value is
// left literal in the compiled output rather than treated as an error.
type PromptTemplate struct {
	ID                uuid.UUID   `json:"id"`
	Code              string      `json:"code"`
	Content           string      `json:"content"`
	RequiredVariables []string    `json:"required_variables"`
	ContentType       ContentType `json:"content_type"`
	Active            bool        `json:"active"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// NewPromptTemplate creates a new PromptTemplate with the given code,
// content, and content type. It generates a new UUID and sets timestamps.
// Returns an error if validation fails.
func NewPromptTemplate(
	code, content string,
	contentType ContentType,
	requiredVariables []string,
) (*PromptTemplate, error) {
	tmpl := &PromptTemplate{
		ID:                uuid.New(),
		Code:              code,
		Content:           content,
		RequiredVariables: requiredVariables,
		ContentType:       contentType,
		Active:            true,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}

	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	return tmpl, nil
}

// Validate checks if the PromptTemplate has valid data.
func (t *PromptTemplate) Validate() error {
	if t.Code == "" {
		return ErrTemplateCodeEmpty
	}

	if t.Content == "" {
		return ErrTemplateContentEmpty
	}

	if err := t.ContentType.Validate(); err != nil {
		return err
	}

	return nil
}

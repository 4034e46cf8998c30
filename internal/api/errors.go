package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/pipeline"
	"github.com/draftforge/draftforge-api/internal/prompt"
	"github.com/draftforge/draftforge-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Configuration errors: the request was fine but the service is not
	// usable until an operator fixes templates or profiles
	case errors.Is(err, generation.ErrNoActiveProfile),
		errors.Is(err, generation.ErrInvalidConfig),
		errors.Is(err, prompt.ErrTemplateNotFound):
		return http.StatusServiceUnavailable

	// Upstream provider exhaustion
	case errors.Is(err, generation.ErrAllProvidersFailed):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrDocumentNotFound):
		return "Document not found"

	case errors.Is(err, store.ErrJobNotFound):
		return "Job not found"

	case errors.Is(err, store.ErrTemplateNotFound), errors.Is(err, prompt.ErrTemplateNotFound):
		return "A required prompt template is not configured"

	case errors.Is(err, generation.ErrNoActiveProfile), errors.Is(err, generation.ErrInvalidConfig):
		return "No usable provider is configured"

	case errors.Is(err, generation.ErrAllProvidersFailed):
		return "Content generation failed on all configured providers"

	case errors.Is(err, pipeline.ErrSessionAborted):
		return "Content generation failed"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validator.ValidationErrors message
	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'GenerateDocumentRequest.Title' Error:Field
		// validation for 'Title' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}

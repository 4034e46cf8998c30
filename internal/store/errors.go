package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrTemplateNotFound, ErrDocumentNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a template with the same code).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrTemplateNotFound indicates that the requested prompt template does
	// not exist in the store.
	ErrTemplateNotFound = fmt.Errorf("%w: prompt template", ErrNotFound)

	// ErrProfileNotFound indicates that the requested provider profile does
	// not exist in the store.
	ErrProfileNotFound = fmt.Errorf("%w: provider profile", ErrNotFound)

	// ErrDocumentNotFound indicates that the requested generated document
	// does not exist in the store.
	ErrDocumentNotFound = fmt.Errorf("%w: generated document", ErrNotFound)

	// ErrJobNotFound indicates that the requested generation job does not
	// exist in the store.
	ErrJobNotFound = fmt.Errorf("%w: generation job", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrTemplateCodeExists indicates that an active template with the
	// given code already exists.
	ErrTemplateCodeExists = fmt.Errorf("%w: template code", ErrDuplicate)

	// ErrProfileRoleTaken indicates that another active profile already
	// holds the requested primary or fallback role.
	ErrProfileRoleTaken = fmt.Errorf("%w: profile role", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "template", "document")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

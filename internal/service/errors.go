package service

import "fmt"

// DocumentServiceError wraps errors from the document service with context.
type DocumentServiceError struct {
	// Operation is the operation that failed (e.g., "generate_document")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for DocumentServiceError.
func (e *DocumentServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("document service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DocumentServiceError) Unwrap() error {
	return e.Err
}

// NewDocumentServiceError creates a new DocumentServiceError.
func NewDocumentServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	return &DocumentServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Package errors provides standardized error handling for the onboarding
// engine and its collaborators.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCatalogLoadFailed       ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogValidationFailed ErrorCode = "CATALOG_VALIDATION_FAILED"
	ErrCodeTemplateNotFound        ErrorCode = "TEMPLATE_NOT_FOUND"

	ErrCodeStateReadFailed  ErrorCode = "STATE_READ_FAILED"
	ErrCodeStateWriteFailed ErrorCode = "STATE_WRITE_FAILED"

	ErrCodeSelectionLimitReached ErrorCode = "SELECTION_LIMIT_REACHED"

	ErrCodeProjectCreateFailed    ErrorCode = "PROJECT_CREATE_FAILED"
	ErrCodeAutomationCreateFailed ErrorCode = "AUTOMATION_CREATE_FAILED"
	ErrCodeNothingToProcess       ErrorCode = "NOTHING_TO_PROCESS"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// IsRetryable reports whether err is a StandardError marked retryable.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// CodeOf extracts the ErrorCode from a StandardError, or "" otherwise.
func CodeOf(err error) ErrorCode {
	if se, ok := err.(*StandardError); ok {
		return se.Code
	}
	return ""
}

// ==========================
// Error Constructors
// ==========================

// NewCatalogLoadFailedError creates a retryable catalog I/O error.
func NewCatalogLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Failed to read template catalog",
		Details:   fmt.Sprintf("path: %s: %v", path, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogValidationFailedError creates a non-retryable schema error.
func NewCatalogValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogValidationFailed,
		Message:   "Template catalog failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateNotFoundError creates a non-retryable template lookup error.
func NewTemplateNotFoundError(templateID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "Template not found in catalog",
		Details:   fmt.Sprintf("templateId: %s", templateID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStateReadFailedError creates a retryable storage read error.
func NewStateReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStateReadFailed,
		Message:   "Failed to read onboarding state from storage",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStateWriteFailedError creates a retryable storage write error.
func NewStateWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStateWriteFailed,
		Message:   "Failed to persist onboarding state",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProjectCreateFailedError creates a retryable database error.
func NewProjectCreateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProjectCreateFailed,
		Message:   "Failed to create project record",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNothingToProcessError creates a non-retryable error for processing an
// absent or incomplete onboarding record.
func NewNothingToProcessError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNothingToProcess,
		Message:   "No completed onboarding record to process",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAutomationCreateFailedError creates a retryable database error.
func NewAutomationCreateFailedError(templateID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAutomationCreateFailed,
		Message:   "Failed to create automation record",
		Details:   fmt.Sprintf("templateId: %s: %v", templateID, err),
		Retryable: true,
		Metadata:  map[string]interface{}{"templateId": templateID},
		Timestamp: time.Now().UTC(),
	}
}

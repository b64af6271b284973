// Package errors provides the standardized error model shared by the session
// controller and the dataset layer.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidSubmission ErrorCode = "INVALID_SUBMISSION"
	ErrCodeSessionBusy       ErrorCode = "SESSION_BUSY"
	ErrCodeSessionClosed     ErrorCode = "SESSION_CLOSED"

	ErrCodeDatasetLoadFailed       ErrorCode = "DATASET_LOAD_FAILED"
	ErrCodeDatasetValidationFailed ErrorCode = "DATASET_VALIDATION_FAILED"
	ErrCodeDatasetCacheFailed      ErrorCode = "DATASET_CACHE_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause records the underlying error so errors.Is can see it.
func (e *StandardError) WithCause(err error) *StandardError {
	e.cause = err
	return e
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidSubmissionError is returned for blank queries; never retryable.
func NewInvalidSubmissionError() *StandardError {
	return newError(ErrCodeInvalidSubmission, "Query is empty or whitespace-only", nil, false)
}

// NewSessionBusyError is returned while a reply is being composed.
func NewSessionBusyError() *StandardError {
	return newError(ErrCodeSessionBusy, "Assistant is still composing a reply", nil, true)
}

// NewSessionClosedError is returned after teardown.
func NewSessionClosedError() *StandardError {
	return newError(ErrCodeSessionClosed, "Session has been closed", nil, false)
}

// NewDatasetLoadFailedError wraps a failure reading the reference dataset.
func NewDatasetLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeDatasetLoadFailed, "Failed to load reference dataset", err, true).
		WithMetadata("source", source)
}

// NewDatasetValidationFailedError reports records or documents that do not fit the schema.
func NewDatasetValidationFailedError(details string) *StandardError {
	e := newError(ErrCodeDatasetValidationFailed, "Reference dataset failed validation", nil, false)
	e.Details = details
	return e
}

// NewDatasetCacheFailedError wraps a cache read/write failure.
func NewDatasetCacheFailedError(err error) *StandardError {
	return newError(ErrCodeDatasetCacheFailed, "Dataset cache operation failed", err, true)
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err, true)
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(query string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error", err, true).
		WithMetadata("query", query)
}

// NewSearchQueryFailedError creates a retryable search error.
func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query failed", err, true).
		WithMetadata("index", index)
}

// NewConfigInvalidError reports a configuration that cannot be used.
func NewConfigInvalidError(details string) *StandardError {
	e := newError(ErrCodeConfigInvalid, "Invalid configuration", nil, false)
	e.Details = details
	return e
}

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

// IsRetryableErrorCode reports whether a code denotes a transient condition.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeSessionBusy,
		ErrCodeDatasetLoadFailed,
		ErrCodeDatasetCacheFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed:
		return true
	}
	return false
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidSubmission, ErrCodeSessionBusy, ErrCodeSessionClosed:
		return "SUBMISSION"
	case ErrCodeDatasetLoadFailed, ErrCodeDatasetValidationFailed, ErrCodeDatasetCacheFailed:
		return "DATASET"
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed, ErrCodeSearchQueryFailed:
		return "DATA_ACCESS"
	case ErrCodeConfigInvalid:
		return "CONFIGURATION"
	}
	return "SYSTEM"
}

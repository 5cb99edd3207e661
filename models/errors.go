package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeEmptyBatch      = "EMPTY_BATCH"
	ErrCodeBatchTooLarge   = "BATCH_TOO_LARGE"
	ErrCodeInvalidURL      = "INVALID_URL"
	ErrCodeNothingToExport = "NOTHING_TO_EXPORT"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses and failed outcomes.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SchemaError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type SchemaError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is matches another *SchemaError by code, so sentinel errors work with
// errors.Is even after wrapping.
func (e *SchemaError) Is(target error) bool {
	t, ok := target.(*SchemaError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(code, message string, err error) *SchemaError {
	return &SchemaError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *SchemaError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// Package error defines domain-specific errors for the KPI tracker.
package error

import "errors"

// Performance domain errors.
var (
	// ErrUnknownSection is returned when a section is outside the closed set.
	ErrUnknownSection = errors.New("unknown section")

	// ErrGroupNotFound is returned when a group key does not exist in a section.
	ErrGroupNotFound = errors.New("group not found")

	// ErrInvalidMonth is returned when a month index is outside 0..11.
	ErrInvalidMonth = errors.New("month must be between 0 and 11")

	// ErrMissingCategory is returned when a category parameter is empty.
	ErrMissingCategory = errors.New("category is required")

	// ErrUnsupportedExportFormat is returned when an export format is not xlsx or csv.
	ErrUnsupportedExportFormat = errors.New("export format must be xlsx or csv")
)

// PerformanceErrorCode defines error codes for performance errors.
// Format: KPI-XXYYYY where XX is category and YYYY is specific error.
type PerformanceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeUnknownSection          PerformanceErrorCode = "KPI-010001"
	ErrCodeGroupNotFound           PerformanceErrorCode = "KPI-010002"
	ErrCodeInvalidMonth            PerformanceErrorCode = "KPI-010003"
	ErrCodeMissingCategory         PerformanceErrorCode = "KPI-010004"
	ErrCodeUnsupportedExportFormat PerformanceErrorCode = "KPI-010005"

	// Internal errors (99XXXX)
	ErrCodePerformanceInternalError PerformanceErrorCode = "KPI-990001"
)

// PerformanceError represents a performance error with code and message.
type PerformanceError struct {
	Code    PerformanceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PerformanceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PerformanceError) Unwrap() error {
	return e.Err
}

// NewPerformanceError creates a new PerformanceError with the given code and message.
func NewPerformanceError(code PerformanceErrorCode, message string, err error) *PerformanceError {
	return &PerformanceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

package error

import "errors"

// Record domain errors.
var (
	// ErrMissingEmployee is returned when a record has no employee id.
	ErrMissingEmployee = errors.New("employee id is required")

	// ErrRecordInvalidMonth is returned when a record month is outside 0..11.
	ErrRecordInvalidMonth = errors.New("record month must be between 0 and 11")

	// ErrRecordUnknownSection is returned when a record names an unknown section.
	ErrRecordUnknownSection = errors.New("record section is unknown")

	// ErrRecordMissingCategory is returned when a record has no category.
	ErrRecordMissingCategory = errors.New("record category is required")

	// ErrRecordInvalidValue is returned when a record value is NaN or infinite.
	ErrRecordInvalidValue = errors.New("record value must be a finite number")

	// ErrUnknownAction is returned when the action endpoint receives an unknown action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMonthLocked is returned when editing a month that has been closed.
	ErrMonthLocked = errors.New("month is locked for editing")

	// ErrRecordPersistFailed is returned when a batch upsert fails.
	ErrRecordPersistFailed = errors.New("failed to persist records")
)

// RecordErrorCode defines error codes for record errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingEmployee       RecordErrorCode = "REC-010001"
	ErrCodeRecordInvalidMonth    RecordErrorCode = "REC-010002"
	ErrCodeRecordUnknownSection  RecordErrorCode = "REC-010003"
	ErrCodeRecordMissingCategory RecordErrorCode = "REC-010004"
	ErrCodeUnknownAction         RecordErrorCode = "REC-010005"
	ErrCodeInvalidPayload        RecordErrorCode = "REC-010006"
	ErrCodeRecordInvalidValue    RecordErrorCode = "REC-010007"
	ErrCodeRateLimited           RecordErrorCode = "REC-020001"

	// State errors (03XXXX)
	ErrCodeMonthLocked RecordErrorCode = "REC-030001"

	// Internal errors (99XXXX)
	ErrCodeRecordPersistFailed RecordErrorCode = "REC-990001"
)

// RecordError represents a record error with code and message.
type RecordError struct {
	Code    RecordErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError with the given code and message.
func NewRecordError(code RecordErrorCode, message string, err error) *RecordError {
	return &RecordError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

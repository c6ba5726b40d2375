package error

import "errors"

// Sync gateway errors. None of them is surfaced to API callers; they drive the
// fallback-to-cache path and are logged.
var (
	// ErrRemoteUnavailable is returned when the remote store cannot be reached.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrMalformedResponse is returned when no JSON object can be extracted from a response.
	ErrMalformedResponse = errors.New("malformed remote response")

	// ErrRemoteRejected is returned when the remote answers with an error payload.
	ErrRemoteRejected = errors.New("remote store rejected the request")

	// ErrCacheMiss is returned when a fallback cache key is absent.
	ErrCacheMiss = errors.New("fallback cache miss")

	// ErrCacheWrite is returned when the fallback cache rejects a write.
	ErrCacheWrite = errors.New("fallback cache write failed")
)

// SyncErrorCode defines error codes for sync errors.
// Format: SYN-XXYYYY where XX is category and YYYY is specific error.
type SyncErrorCode string

const (
	// Transport errors (01XXXX)
	ErrCodeRemoteUnavailable SyncErrorCode = "SYN-010001"
	ErrCodeMalformedResponse SyncErrorCode = "SYN-010002"
	ErrCodeRemoteRejected    SyncErrorCode = "SYN-010003"

	// Cache errors (02XXXX)
	ErrCodeCacheMiss  SyncErrorCode = "SYN-020001"
	ErrCodeCacheWrite SyncErrorCode = "SYN-020002"
)

// SyncError represents a sync error with code and message.
type SyncError struct {
	Code    SyncErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError with the given code and message.
func NewSyncError(code SyncErrorCode, message string, err error) *SyncError {
	return &SyncError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

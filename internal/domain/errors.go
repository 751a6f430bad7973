package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindDirectoryNotFound
	KindNoSupportedFiles
	KindAuthentication
	KindFileRead
	KindNetwork
	KindService
	KindResponseParse
	KindWrite
)

// String returns the failure kind as a short label for logs and summaries.
func (k Kind) String() string {
	switch k {
	case KindDirectoryNotFound:
		return "directory not found"
	case KindNoSupportedFiles:
		return "no supported files found"
	case KindAuthentication:
		return "authentication error"
	case KindFileRead:
		return "file read error"
	case KindNetwork:
		return "network error"
	case KindService:
		return "transcription service error"
	case KindResponseParse:
		return "response parse error"
	case KindWrite:
		return "write error"
	default:
		return "unknown error"
	}
}

// Fatal reports whether the kind aborts the whole batch rather than a
// single file.
func (k Kind) Fatal() bool {
	switch k {
	case KindDirectoryNotFound, KindNoSupportedFiles, KindAuthentication:
		return true
	default:
		return false
	}
}

// Error is a classified pipeline failure with optional file and HTTP
// status context.
type Error struct {
	Kind    Kind
	Path    string // input file involved, empty for batch-level failures
	Status  int    // HTTP status for service failures, 0 otherwise
	Message string
	Err     error
}

// Error formats the failure for logs and the run summary.
func (e *Error) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified failure.
func NewError(kind Kind, path, message string, err error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Err: err}
}

// KindOf extracts the failure kind from an error chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// Retryable reports whether a failure is transient: a network-level
// failure or a rate-limited service response.
func Retryable(err error) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	if de.Kind == KindNetwork {
		return true
	}
	return de.Kind == KindService && de.Status == http.StatusTooManyRequests
}

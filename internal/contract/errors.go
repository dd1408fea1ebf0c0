package contract

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the command boundary can decide how to
// present them and whether a retry makes sense.
type ErrorKind string

// All error kinds recognized at the command boundary.
const (
	InvalidTokenError            ErrorKind = "invalid_token"
	NetworkError                 ErrorKind = "network_error"
	RepositoryNotFoundError      ErrorKind = "repository_not_found"
	InsufficientPermissionsError ErrorKind = "insufficient_permissions"
	AnalysisFailedError          ErrorKind = "analysis_failed"
	ValidationError              ErrorKind = "validation_error"
	ResourceError                ErrorKind = "resource_error"
)

// ErrPayloadTooLarge signals that the completion endpoint rejected the
// request with HTTP 413. The orchestrator reacts by switching to chunked
// analysis instead of falling back.
var ErrPayloadTooLarge = errors.New("completion payload too large")

// AppError carries a technical message for logs, a separate human-readable
// message for display, and a flag saying whether a retry could help.
type AppError struct {
	Kind        ErrorKind
	Message     string // Technical detail, logged
	UserMessage string // Shown to the user
	Recoverable bool
	Err         error
}

// Error implements the error interface with the technical message.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewRepositoryNotFound builds a non-recoverable repository error.
func NewRepositoryNotFound(path string) *AppError {
	return &AppError{
		Kind:        RepositoryNotFoundError,
		Message:     fmt.Sprintf("no git repository at %q", path),
		UserMessage: fmt.Sprintf("%s is not a Git repository. Verify the path or run 'git init'.", path),
		Recoverable: false,
	}
}

// NewInvalidToken builds a recoverable credential error.
func NewInvalidToken(err error) *AppError {
	return &AppError{
		Kind:        InvalidTokenError,
		Message:     "completion endpoint rejected the bearer token",
		UserMessage: "The configured token was rejected. Update it with 'teamlens token set'.",
		Recoverable: true,
		Err:         err,
	}
}

// NewNetworkError builds a recoverable network error.
func NewNetworkError(err error) *AppError {
	return &AppError{
		Kind:        NetworkError,
		Message:     "completion call failed",
		UserMessage: "Could not reach the completion endpoint. Check your network connection.",
		Recoverable: true,
		Err:         err,
	}
}

// NewValidationError builds a non-recoverable configuration error.
func NewValidationError(msg string) *AppError {
	return &AppError{
		Kind:        ValidationError,
		Message:     msg,
		UserMessage: msg,
		Recoverable: false,
	}
}

// NewResourceError builds a recoverable subprocess/timeout error.
func NewResourceError(msg string, err error) *AppError {
	return &AppError{
		Kind:        ResourceError,
		Message:     msg,
		UserMessage: "A git invocation failed or timed out. Ensure git is installed and the repository is readable.",
		Recoverable: true,
		Err:         err,
	}
}

// KindOf returns the error kind of err when it carries one, or
// AnalysisFailedError otherwise.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return AnalysisFailedError
}

// IsRecoverable reports whether err carries a recoverable AppError.
func IsRecoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}

// UserMessage returns the display message for err, falling back to the
// technical message for plain errors.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.UserMessage != "" {
		return appErr.UserMessage
	}
	return err.Error()
}

package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Infrastructure errors
	ErrDatabaseUnavailable = errors.New("database unavailable")
)

// Student errors
var (
	ErrStudentNotFound  = NewCustomError(ErrResourceNotFound, "Student not found")
	ErrInvalidStudentID = NewCustomError(ErrBadRequest, "Student ID must be a valid number")
)

// CustomError attaches a client-facing message to a sentinel error
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with a message
func NewValidationError(message string) error {
	return NewCustomError(ErrValidationFailed, message)
}

// Message returns the client-facing message of err, or fallback when err carries none.
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// Is reports whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

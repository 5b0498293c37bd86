package apperror

import "fmt"

type AppError struct {
	Code       string            // Error code (e.g., INVALID_INPUT)
	Message    string            // User-facing message, rendered as {"error": Message}
	HTTPStatus int               // HTTP status code
	Fields     map[string]string // Per-field violations (optional)
	Err        error             // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code and message so that copies carrying
// fields or a wrapped cause still compare equal to the sentinel they came from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithFields returns a copy of e carrying per-field violation messages.
func (e *AppError) WithFields(fields map[string]string) *AppError {
	cp := *e
	cp.Fields = fields
	return &cp
}

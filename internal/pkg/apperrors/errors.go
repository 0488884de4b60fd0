package apperrors

import "errors"

// Error categories. The HTTP layer maps each one to a status code, so every
// error a service returns should unwrap to one of them.
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenNotFound = errors.New("token not found")

	ErrPermissionDenied = errors.New("permission denied")

	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Course content errors
var (
	ErrCourseNotFound    = NewResourceNotFoundError("course not found")
	ErrModuleNotFound    = NewResourceNotFoundError("module not found")
	ErrLessonNotFound    = NewResourceNotFoundError("lesson not found")
	ErrContentNotFound   = NewResourceNotFoundError("lesson content not found")
	ErrMediaNotFound     = NewResourceNotFoundError("media not found")
	ErrQuizNotFound      = NewResourceNotFoundError("quiz not found")
	ErrQuestionNotFound  = NewResourceNotFoundError("quiz question not found")
	ErrObjectiveNotFound = NewResourceNotFoundError("objective not found")
	ErrInvalidParent     = NewValidationError("invalid parent for content")
)

// Storage errors
var (
	ErrStorageUnavailable = errors.New("object storage unavailable")
	ErrInvalidSignature   = NewForbiddenError("invalid or expired upload signature")
)

// CustomError carries a client-facing message on top of a category error
type CustomError struct {
	Err     error
	Message string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError attaches a client-facing message to a category error
func NewCustomError(category error, message string) *CustomError {
	return &CustomError{Err: category, Message: message}
}

func newError(category error, message string) error {
	return NewCustomError(category, message)
}

// Is reports whether err matches target or any of others
func Is(err, target error, others ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range others {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// NewResourceNotFoundError creates a not found error with a message
func NewResourceNotFoundError(message string) error {
	return newError(ErrResourceNotFound, message)
}

// NewForbiddenError creates a permission denied error with a message
func NewForbiddenError(message string) error {
	return newError(ErrPermissionDenied, message)
}

// NewBadRequestError creates a bad request error with a message
func NewBadRequestError(message string) error {
	return newError(ErrBadRequest, message)
}

// NewValidationError creates an error for rejected input with a message
func NewValidationError(message string) error {
	return newError(ErrValidationFailed, message)
}

// Message returns the client-facing message of err, or fallback when err
// carries none
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

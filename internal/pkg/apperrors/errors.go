package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenNotFound = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Project errors
var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrJoinRequestNotFound = errors.New("join request not found")
	ErrDuplicateRequest    = errors.New("join request already exists for this user")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserBlocked  = errors.New("user is blocked")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Message errors
var (
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidRoomID   = errors.New("invalid room id")
)

// Content errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// NewDuplicateRequestError creates a new custom error for a repeated join request
func NewDuplicateRequestError(message string) error {
	return &CustomError{
		Err:     ErrDuplicateRequest,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError pairs a sentinel with a caller-facing message
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

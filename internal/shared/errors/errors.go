package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an AppError. The HTTP layer maps each type to one status code.
type ErrorType string

const (
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeConflict      ErrorType = "conflict"
	ErrorTypeUnauthorized  ErrorType = "unauthorized"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeInternal      ErrorType = "internal"
)

// InternalMessage is the only message clients see for internal failures.
const InternalMessage = "Server error"

// AppError carries a client-safe Message and an optional cause that is only logged.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(t ErrorType, message string, cause error) error {
	return &AppError{Type: t, Message: message, Err: cause}
}

func NotFound(message string) error     { return newError(ErrorTypeNotFound, message, nil) }
func Validation(message string) error   { return newError(ErrorTypeValidation, message, nil) }
func Conflict(message string) error     { return newError(ErrorTypeConflict, message, nil) }
func Unauthorized(message string) error { return newError(ErrorTypeUnauthorized, message, nil) }

// Configuration marks a request that cannot be served until the server is reconfigured.
func Configuration(message string) error { return newError(ErrorTypeConfiguration, message, nil) }

func Validationf(format string, args ...any) error {
	return newError(ErrorTypeValidation, fmt.Sprintf(format, args...), nil)
}

func WrapValidation(message string, cause error) error {
	return newError(ErrorTypeValidation, message, cause)
}

func WrapInternal(message string, cause error) error {
	return newError(ErrorTypeInternal, message, cause)
}

// GetType returns the type of the first AppError in err's chain, or internal.
func GetType(err error) ErrorType {
	if appErr, ok := asAppError(err); ok {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// ClientMessage returns the text that may be shown to a caller.
// Internal and unclassified errors collapse to InternalMessage.
func ClientMessage(err error) string {
	appErr, ok := asAppError(err)
	if !ok || appErr.Type == ErrorTypeInternal {
		return InternalMessage
	}
	return appErr.Message
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

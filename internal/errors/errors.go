package errors

import (
	"context"
	"errors"
	"fmt"
)

// Codes carried by the domain-specific constructors.
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeDatabase           = "DATABASE_ERROR"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeTimeout            = "TIMEOUT"
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotLoggedIn        = "NOT_LOGGED_IN"
)

var (
	// ErrDuplicateUsername matches any error built by NewDuplicateUsernameError.
	ErrDuplicateUsername = &AppError{Type: ErrorTypeConflict, Code: CodeDuplicateUsername}
	// ErrInvalidCredentials matches any error built by NewInvalidCredentialsError.
	ErrInvalidCredentials = &AppError{Type: ErrorTypeUnauthenticated, Code: CodeInvalidCredentials}
	// ErrNotLoggedIn matches any error built by NewNotLoggedInError.
	ErrNotLoggedIn = &AppError{Type: ErrorTypePermission, Code: CodeNotLoggedIn}
)

// newError builds an AppError; kv is a flat list of context keys and values.
func newError(errorType ErrorType, code, message string, cause error, kv ...interface{}) *AppError {
	e := &AppError{
		Type:    errorType,
		Message: message,
		Code:    code,
		Cause:   cause,
		Context: make(map[string]interface{}, len(kv)/2),
	}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Context[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return e
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, CodeValidationFailed, message, cause)
}

// NewNotFoundError reports a missing resource, such as a task another
// user owns.
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, CodeNotFound,
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		"resource", resource, "identifier", identifier)
}

// NewDatabaseError wraps a storage failure. Deadline and cancellation
// causes become timeout errors instead.
func NewDatabaseError(operation string, cause error) *AppError {
	if cause != nil && (errors.Is(cause, context.DeadlineExceeded) || errors.Is(cause, context.Canceled)) {
		timeoutErr := NewTimeoutError(operation, cause.Error())
		timeoutErr.Cause = cause
		return timeoutErr
	}
	return newError(ErrorTypeDatabase, CodeDatabase,
		"database operation failed: "+operation, cause,
		"operation", operation)
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, CodeInvalidInput,
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		"field", field, "value", value, "reason", reason)
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newError(ErrorTypeTimeout, CodeTimeout,
		"operation timed out: "+operation, nil,
		"operation", operation, "timeout", timeout)
}

// NewDuplicateUsernameError reports a registration against a taken username.
func NewDuplicateUsernameError(username string, cause error) *AppError {
	return newError(ErrorTypeConflict, CodeDuplicateUsername,
		"username already exists", cause,
		"username", username)
}

// NewInvalidCredentialsError is returned for every failed login. It never
// says whether the username or the password was wrong.
func NewInvalidCredentialsError() *AppError {
	return newError(ErrorTypeUnauthenticated, CodeInvalidCredentials, "invalid username or password", nil)
}

// NewNotLoggedInError reports a task operation attempted without a session.
func NewNotLoggedInError(operation string) *AppError {
	return newError(ErrorTypePermission, CodeNotLoggedIn,
		"login required to "+operation, nil,
		"operation", operation)
}

// IsAppError reports whether err is or wraps an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage returns text fit for the terminal. Storage details stay
// out of it.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch appErr.Type {
	case ErrorTypeDatabase:
		return "A database error occurred. Please try again."
	case ErrorTypeTimeout:
		return "The operation timed out. Please try again."
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput,
		ErrorTypePermission, ErrorTypeConflict, ErrorTypeUnauthenticated:
		return appErr.Message
	}
	return "An unexpected error occurred. Please try again."
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is a system failure rather than a
// mistake by the user.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput,
		ErrorTypeConflict, ErrorTypeUnauthenticated:
		return false
	case ErrorTypePermission:
		return appErr.Code != CodeNotLoggedIn
	}
	return true
}

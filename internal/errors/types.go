package errors

import (
	"fmt"
)

// ErrorType is the category an AppError falls into. The CLI picks the
// user-facing message by category.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypePermission
	ErrorTypeConflict
	ErrorTypeUnauthenticated
)

var errorTypeNames = [...]string{
	ErrorTypeValidation:      "validation",
	ErrorTypeNotFound:        "not_found",
	ErrorTypeDatabase:        "database",
	ErrorTypeInvalidInput:    "invalid_input",
	ErrorTypeTimeout:         "timeout",
	ErrorTypePermission:      "permission",
	ErrorTypeConflict:        "conflict",
	ErrorTypeUnauthenticated: "unauthenticated",
}

func (et ErrorType) String() string {
	if et < 0 || int(et) >= len(errorTypeNames) {
		return "unknown"
	}
	return errorTypeNames[et]
}

// AppError is the structured error returned by every layer below the CLI.
// Message is safe to show to a user; Cause is not.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Type.String() + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on type and code, so sentinel AppErrors work with errors.Is.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

// IsType reports whether e belongs to the given category.
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records a key/value for logs and returns e.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext looks up a value recorded with WithContext.
func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, ok := e.Context[key]
	return value, ok
}

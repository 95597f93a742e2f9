package cli

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"todo/internal/errors"
	"todo/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.ShouldLogError(err) {
		slog.Error("operation failed", "operation", operation, "error", err)
	}
	return fmt.Errorf("failed to %s: %w", operation, eh.HandleSimple(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}

	// Already translated by a command handler.
	var handled userError
	if stderrors.As(err, &handled) {
		return err
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return userError{msg: validationErr.GetUserFriendlyMessage(), cause: err}
	}

	if stderrors.Is(err, errors.ErrNotLoggedIn) {
		return userError{msg: errors.GetUserMessage(err) + " (use login, or pass --username and --password)", cause: err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return userError{msg: errors.GetUserMessage(err), cause: err}
	}

	// Fallback for unknown errors
	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase) || errors.IsErrorType(err, errors.ErrorTypeTimeout)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// userError shows msg while keeping the original error reachable for
// errors.Is and errors.As.
type userError struct {
	msg   string
	cause error
}

func (e userError) Error() string { return e.msg }
func (e userError) Unwrap() error { return e.cause }

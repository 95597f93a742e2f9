package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("description is required")
	err := NewValidationError("invalid task description", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "invalid task description" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "invalid task description")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "42")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: 42" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: 42")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}
	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "42" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewDatabaseError("insert user", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: insert user" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if err.Code != "DATABASE_ERROR" {
		t.Errorf("NewDatabaseError code = %v, want %v", err.Code, "DATABASE_ERROR")
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewDatabaseError should unwrap to its cause")
	}
}

func TestNewDatabaseError_Deadline(t *testing.T) {
	cause := fmt.Errorf("exec: %w", context.DeadlineExceeded)
	err := NewDatabaseError("list tasks", cause)

	if err.Type != ErrorTypeTimeout {
		t.Errorf("NewDatabaseError with deadline type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("timeout error should unwrap to context.DeadlineExceeded")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("priority", "Urgent", "must be one of High, Medium, Low")

	if err.Type != ErrorTypeInvalidInput {
		t.Errorf("NewInvalidInputError type = %v, want %v", err.Type, ErrorTypeInvalidInput)
	}
	if err.Message != "invalid input for priority: must be one of High, Medium, Low" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	value, ok := err.GetContext("value")
	if !ok || value != "Urgent" {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("database query", "5s")

	if err.Type != ErrorTypeTimeout {
		t.Errorf("NewTimeoutError type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if err.Code != "TIMEOUT" {
		t.Errorf("NewTimeoutError code = %v, want %v", err.Code, "TIMEOUT")
	}
	timeout, ok := err.GetContext("timeout")
	if !ok || timeout != "5s" {
		t.Errorf("NewTimeoutError should set timeout context")
	}
}

func TestNewDuplicateUsernameError(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.username")
	err := NewDuplicateUsernameError("alice", cause)

	if !errors.Is(err, ErrDuplicateUsername) {
		t.Errorf("NewDuplicateUsernameError should match ErrDuplicateUsername")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("NewDuplicateUsernameError should not match ErrInvalidCredentials")
	}
	username, ok := err.GetContext("username")
	if !ok || username != "alice" {
		t.Errorf("NewDuplicateUsernameError should set username context")
	}
	if err.Unwrap() != cause {
		t.Errorf("NewDuplicateUsernameError should keep its cause")
	}
}

func TestNewInvalidCredentialsError(t *testing.T) {
	err := NewInvalidCredentialsError()

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("NewInvalidCredentialsError should match ErrInvalidCredentials")
	}
	if err.Message != "invalid username or password" {
		t.Errorf("NewInvalidCredentialsError message = %v", err.Message)
	}
}

func TestNewNotLoggedInError(t *testing.T) {
	err := NewNotLoggedInError("add task")

	if !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("NewNotLoggedInError should match ErrNotLoggedIn")
	}
	if !IsErrorType(err, ErrorTypePermission) {
		t.Errorf("NewNotLoggedInError should be a permission error")
	}
	if err.Message != "login required to add task" {
		t.Errorf("NewNotLoggedInError message = %v", err.Message)
	}
}

func TestIsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}
	wrapped := fmt.Errorf("add task: %w", appError)

	if !IsAppError(appError) {
		t.Errorf("IsAppError should return true for AppError")
	}
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError should see through wrapping")
	}
	if IsAppError(errors.New("regular error")) {
		t.Errorf("IsAppError should return false for regular error")
	}
	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestAsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}

	result, ok := AsAppError(appError)
	if !ok || result != appError {
		t.Errorf("AsAppError should return the same AppError instance")
	}

	result, ok = AsAppError(errors.New("regular error"))
	if ok || result != nil {
		t.Errorf("AsAppError should return nil, false for regular error")
	}
}

func TestIsErrorType(t *testing.T) {
	appError := &AppError{Type: ErrorTypeConflict}

	if !IsErrorType(appError, ErrorTypeConflict) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if IsErrorType(appError, ErrorTypeDatabase) {
		t.Errorf("IsErrorType should return false for different type")
	}
	if IsErrorType(errors.New("regular error"), ErrorTypeValidation) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Validation error", NewValidationError("task description is required", nil), "task description is required"},
		{"Not found error", NewNotFoundError("task", "7"), "task not found: 7"},
		{"Database error", NewDatabaseError("query", errors.New("boom")), "A database error occurred. Please try again."},
		{"Timeout error", NewTimeoutError("query", "5s"), "The operation timed out. Please try again."},
		{"Duplicate username", NewDuplicateUsernameError("alice", nil), "username already exists"},
		{"Invalid credentials", NewInvalidCredentialsError(), "invalid username or password"},
		{"Not logged in", NewNotLoggedInError("list tasks"), "login required to list tasks"},
		{"Unknown type", &AppError{Type: ErrorType(99), Message: "hidden"}, "An unexpected error occurred. Please try again."},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewInvalidCredentialsError()) != CodeInvalidCredentials {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Not found error", NewNotFoundError("task", "123"), false},
		{"Invalid input error", NewInvalidInputError("due", "x", "format"), false},
		{"Duplicate username", NewDuplicateUsernameError("bob", nil), false},
		{"Invalid credentials", NewInvalidCredentialsError(), false},
		{"Not logged in", NewNotLoggedInError("add task"), false},
		{"Database error", NewDatabaseError("query", errors.New("timeout")), true},
		{"Timeout error", NewTimeoutError("query", "5s"), true},
		{"Permission error", &AppError{Type: ErrorTypePermission, Code: "PERMISSION_DENIED"}, true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}

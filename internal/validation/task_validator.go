package validation

import (
	"time"

	"todo/internal/domain"
)

// EmptyDescriptionMessage is reported when a task description is blank.
const EmptyDescriptionMessage = "task description cannot be empty"

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithValidator creates a task validator sharing v.
func NewTaskValidatorWithValidator(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

func (tv *TaskValidator) checkDescription(ve *ValidationError, description string) {
	if !tv.validator.IsNonEmptyString(description) {
		ve.AddRequiredError(FieldDescription, EmptyDescriptionMessage)
	}
}

func (tv *TaskValidator) checkPriority(ve *ValidationError, priority domain.Priority) {
	if !tv.validator.IsValidPriority(priority) {
		ve.AddInvalidValueError(FieldPriority, string(priority), "must be one of High, Medium, Low")
	}
}

// ValidateDescription rejects a description that is empty or only
// whitespace. A valid description is kept exactly as entered.
func (tv *TaskValidator) ValidateDescription(description string) error {
	ve := NewValidationError()
	tv.checkDescription(ve, description)
	return ve.finish()
}

// ValidatePriority rejects priorities outside High, Medium, Low.
func (tv *TaskValidator) ValidatePriority(priority domain.Priority) error {
	ve := NewValidationError()
	tv.checkPriority(ve, priority)
	return ve.finish()
}

// ValidateTaskForCreation checks every field of a new task at once.
func (tv *TaskValidator) ValidateTaskForCreation(ownerID int64, description string, priority domain.Priority) error {
	ve := NewValidationError()

	if !tv.validator.IsValidID(ownerID) {
		ve.AddInvalidValueError(FieldOwnerID, ownerID, "must be a positive integer")
	}
	tv.checkDescription(ve, description)
	tv.checkPriority(ve, priority)

	return ve.finish()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidID(id) {
		ve := NewValidationError()
		ve.AddInvalidValueError(FieldTaskID, id, "must be a positive integer")
		return ve.finish()
	}
	return nil
}

// ParsePriority parses user input into a priority. Empty input means Medium.
func (tv *TaskValidator) ParsePriority(s string) (domain.Priority, error) {
	if !tv.validator.IsNonEmptyString(s) {
		return domain.PriorityMedium, nil
	}
	p, ok := domain.ParsePriority(s)
	if !ok {
		ve := NewValidationError()
		ve.AddInvalidValueError(FieldPriority, s, "must be one of High, Medium, Low")
		return "", ve.finish()
	}
	return p, nil
}

// ParseDueDate parses a YYYY-MM-DD date. Empty input means today.
func (tv *TaskValidator) ParseDueDate(s string) (time.Time, error) {
	if !tv.validator.IsNonEmptyString(s) {
		return tv.validator.Today(), nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		ve := NewValidationError()
		ve.AddInvalidFormatError(FieldDueDate, s, "YYYY-MM-DD")
		return time.Time{}, ve.finish()
	}
	return d, nil
}

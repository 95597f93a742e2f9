package validation

import (
	"strings"
	"time"

	"todo/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	now func() time.Time
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// NewValidatorWithClock creates a validator whose notion of today comes from now.
func NewValidatorWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidID checks if a store-assigned ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidPriority checks p against the fixed priority set
func (v *Validator) IsValidPriority(p domain.Priority) bool {
	return p.IsValid()
}

// Today returns the current calendar date.
func (v *Validator) Today() time.Time {
	return domain.DateOf(v.now())
}

package validation

// EmptyUsernameMessage is reported when a username is blank.
const EmptyUsernameMessage = "username cannot be empty"

// UserValidator validates credentials before they reach the store.
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new user validator
func NewUserValidator() *UserValidator {
	return &UserValidator{validator: NewValidator()}
}

// ValidateUsername rejects a username with no visible characters. Accepted
// names are stored and matched exactly as given. Passwords carry no rules.
func (uv *UserValidator) ValidateUsername(username string) error {
	ve := NewValidationError()

	if !uv.validator.IsNonEmptyString(username) {
		ve.AddRequiredError(FieldUsername, EmptyUsernameMessage)
	}

	return ve.finish()
}

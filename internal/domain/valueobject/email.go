package valueobject

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

// validate backs the value-object constructors with the same validator the
// HTTP layer binds requests with, so both ends agree on what a valid email is.
var validate = validator.New()

// Email is a validated, canonically lower-cased email address.
type Email struct {
	value string
}

// NewEmail trims and lower-cases the input and validates it.
func NewEmail(value string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Email{}, domainerr.Validation("Email cannot be empty")
	}
	if !IsValidEmail(v) {
		return Email{}, domainerr.Validationf("Invalid email format: %s", value)
	}
	return Email{value: v}, nil
}

// IsValidEmail lets callers pre-check input before constructing an Email.
func IsValidEmail(value string) bool {
	return validate.Var(strings.TrimSpace(value), "required,email") == nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

// Equal is value-based on the canonical form.
func (e Email) Equal(other Email) bool { return e.value == other.value }

// IsZero reports whether the Email was never constructed (rehydration guard).
func (e Email) IsZero() bool { return e.value == "" }

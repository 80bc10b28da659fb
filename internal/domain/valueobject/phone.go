package valueobject

import (
	"strings"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

// Vietnamese mobile numbers normalize to 9 local digits whose first digit
// identifies the carrier block.
const phoneLocalDigits = 9

// validMobileLeadDigits are the carrier blocks in service; a normalized
// number must start with one of these.
var validMobileLeadDigits = map[byte]bool{'3': true, '5': true, '7': true, '8': true, '9': true}

// PhoneNumber is a Vietnamese mobile number stored in its 9-digit local form
// (no country code, no leading zero). Inputs in +84, 84 and 0-prefixed forms
// all normalize to the same value.
type PhoneNumber struct {
	value string
}

// NewPhoneNumber normalizes and validates the input.
func NewPhoneNumber(value string) (PhoneNumber, error) {
	normalized, ok := normalizePhone(value)
	if !ok {
		return PhoneNumber{}, domainerr.Validation("Invalid phone number format")
	}
	return PhoneNumber{value: normalized}, nil
}

// IsValidPhoneNumber lets callers pre-check input before construction.
func IsValidPhoneNumber(value string) bool {
	_, ok := normalizePhone(value)
	return ok
}

// normalizePhone strips every non-digit except a leading +, drops the +84/84
// country code or the local leading 0, and checks the 9-digit remainder.
func normalizePhone(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()

	switch {
	case strings.HasPrefix(s, "+84"):
		s = s[3:]
	case strings.HasPrefix(s, "84"):
		s = s[2:]
	case strings.HasPrefix(s, "0"):
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		return "", false
	}

	if len(s) != phoneLocalDigits {
		return "", false
	}
	if !validMobileLeadDigits[s[0]] {
		return "", false
	}
	return s, true
}

// Value returns the normalized 9-digit local form.
func (p PhoneNumber) Value() string  { return p.value }
func (p PhoneNumber) String() string { return p.value }

// E164 renders the number with the +84 country code for display and SMS.
func (p PhoneNumber) E164() string { return "+84" + p.value }

// Equal compares normalized values, so the same number written in different
// input formats is equal.
func (p PhoneNumber) Equal(other PhoneNumber) bool { return p.value == other.value }

func (p PhoneNumber) IsZero() bool { return p.value == "" }

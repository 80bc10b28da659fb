package valueobject

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

const otpCodeLen = 6

// OtpCode is a fixed-length numeric one-time code with an expiry instant.
type OtpCode struct {
	value     string
	expiresAt time.Time
}

// NewOtpCode validates an existing code, e.g. one loaded back from Redis.
func NewOtpCode(value string, expiresAt time.Time) (OtpCode, error) {
	if len(value) != otpCodeLen {
		return OtpCode{}, domainerr.Validationf("OTP code must be %d digits", otpCodeLen)
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return OtpCode{}, domainerr.Validation("OTP code must be numeric")
		}
	}
	if expiresAt.IsZero() {
		return OtpCode{}, domainerr.Validation("OTP expiry cannot be zero")
	}
	return OtpCode{value: value, expiresAt: expiresAt}, nil
}

// GenerateOtpCode creates a secure random 6-digit code valid for ttl from now.
func GenerateOtpCode(ttl time.Duration) (OtpCode, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return OtpCode{}, err
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	code := fmt.Sprintf("%06d", n%1000000)
	return OtpCode{value: code, expiresAt: time.Now().UTC().Add(ttl)}, nil
}

func (o OtpCode) Value() string        { return o.value }
func (o OtpCode) ExpiresAt() time.Time { return o.expiresAt }

// Expired reports whether the code is no longer usable at the given instant.
// The clock is passed in so callers control time in tests.
func (o OtpCode) Expired(at time.Time) bool { return at.After(o.expiresAt) }

// Matches compares codes in constant shape (both are fixed length).
func (o OtpCode) Matches(candidate string) bool { return o.value == candidate }

func (o OtpCode) IsZero() bool { return o.value == "" }

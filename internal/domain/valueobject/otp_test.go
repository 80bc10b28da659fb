package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

func TestNewOtpCode(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute)

	code, err := NewOtpCode("042317", exp)
	require.NoError(t, err)
	assert.Equal(t, "042317", code.Value())
	assert.True(t, code.Matches("042317"))
	assert.False(t, code.Matches("042318"))

	for _, bad := range []string{"", "12345", "1234567", "12a456"} {
		_, err := NewOtpCode(bad, exp)
		require.Error(t, err, "input %q", bad)
		assert.True(t, domainerr.IsValidation(err))
	}

	_, err = NewOtpCode("123456", time.Time{})
	require.Error(t, err)
}

func TestOtpCodeExpiry(t *testing.T) {
	exp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	code, err := NewOtpCode("123456", exp)
	require.NoError(t, err)

	assert.False(t, code.Expired(exp.Add(-time.Second)))
	assert.False(t, code.Expired(exp))
	assert.True(t, code.Expired(exp.Add(time.Second)))
}

func TestGenerateOtpCode(t *testing.T) {
	code, err := GenerateOtpCode(5 * time.Minute)
	require.NoError(t, err)
	assert.Len(t, code.Value(), 6)
	for i := 0; i < len(code.Value()); i++ {
		assert.GreaterOrEqual(t, code.Value()[i], byte('0'))
		assert.LessOrEqual(t, code.Value()[i], byte('9'))
	}
	assert.False(t, code.Expired(time.Now()))
}

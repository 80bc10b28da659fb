package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

func TestNewPhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "local form", input: "0901234567", want: "901234567"},
		{name: "country code without plus", input: "84901234567", want: "901234567"},
		{name: "country code with plus", input: "+84901234567", want: "901234567"},
		{name: "bare nine digits", input: "901234567", want: "901234567"},
		{name: "formatting stripped", input: "+84 90 123-45.67", want: "901234567"},
		{name: "viettel prefix", input: "0351234567", want: "351234567"},
		{name: "empty fails", input: "", wantErr: true},
		{name: "too short fails", input: "090123456", wantErr: true},
		{name: "too long fails", input: "09012345678", wantErr: true},
		{name: "landline prefix fails", input: "0241234567", wantErr: true},
		{name: "leading one fails", input: "0101234567", wantErr: true},
		{name: "letters only fail", input: "abcdefghi", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPhoneNumber(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domainerr.IsValidation(err))
				assert.EqualError(t, err, "Invalid phone number format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Value())
		})
	}
}

// The same number written in any accepted input format is one value.
func TestPhoneNumberEquivalence(t *testing.T) {
	local, err := NewPhoneNumber("0901234567")
	require.NoError(t, err)
	cc, err := NewPhoneNumber("84901234567")
	require.NoError(t, err)
	plus, err := NewPhoneNumber("+84901234567")
	require.NoError(t, err)

	assert.True(t, local.Equal(cc))
	assert.True(t, cc.Equal(plus))
	assert.Equal(t, "901234567", local.Value())
	assert.Equal(t, "+84901234567", local.E164())
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("0901234567"))
	assert.False(t, IsValidPhoneNumber("12345"))
}

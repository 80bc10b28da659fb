package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "user@example.com", want: "user@example.com"},
		{name: "normalized to lower case", input: "User@Example.COM", want: "user@example.com"},
		{name: "trimmed", input: "  user@example.com  ", want: "user@example.com"},
		{name: "empty fails", input: "", wantErr: true},
		{name: "whitespace fails", input: "   ", wantErr: true},
		{name: "missing at fails", input: "userexample.com", wantErr: true},
		{name: "missing domain fails", input: "user@", wantErr: true},
		{name: "spaces inside fail", input: "us er@example.com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEmail(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domainerr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Value())
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@b.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail(""))
}

func TestEmailEqual(t *testing.T) {
	a, err := NewEmail("User@Example.com")
	require.NoError(t, err)
	b, err := NewEmail("user@example.com")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

func mustMoney(t *testing.T, amount string, currency string) Money {
	t.Helper()
	m, err := NewMoneyFromString(amount, currency)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		currency     string
		wantErr      bool
		wantAmount   string
		wantCurrency string
	}{
		{name: "simple", amount: "100", currency: "VND", wantAmount: "100", wantCurrency: "VND"},
		{name: "rounds to four decimals", amount: "100.123456789", currency: "VND", wantAmount: "100.1235", wantCurrency: "VND"},
		{name: "rounds half away from zero", amount: "1.00005", currency: "VND", wantAmount: "1.0001", wantCurrency: "VND"},
		{name: "currency trimmed and upper-cased", amount: "5", currency: " usd ", wantAmount: "5", wantCurrency: "USD"},
		{name: "zero amount ok", amount: "0", currency: "VND", wantAmount: "0", wantCurrency: "VND"},
		{name: "negative amount fails", amount: "-0.01", currency: "VND", wantErr: true},
		{name: "empty currency fails", amount: "10", currency: "", wantErr: true},
		{name: "whitespace currency fails", amount: "10", currency: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.amount, tt.currency)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domainerr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, m.Amount().Equal(decimal.RequireFromString(tt.wantAmount)), "amount = %s", m.Amount())
			assert.Equal(t, tt.wantCurrency, m.Currency())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := mustMoney(t, "100.50", "VND")
	b := mustMoney(t, "49.50", "VND")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "VND", sum.Currency())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(51)))

	// Subtraction below zero violates non-negativity.
	_, err = b.Sub(a)
	require.Error(t, err)
	assert.True(t, domainerr.IsValidation(err))

	doubled, err := a.Mul(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, doubled.Amount().Equal(decimal.NewFromInt(201)))

	half, err := a.Div(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, half.Amount().Equal(decimal.RequireFromString("50.25")))

	_, err = a.Div(decimal.Zero)
	require.Error(t, err)
	assert.True(t, domainerr.IsDivideByZero(err))

	_, err = a.Mul(decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.True(t, domainerr.IsValidation(err))
}

func TestMoneyCurrencySafety(t *testing.T) {
	vnd := mustMoney(t, "100", "VND")
	usd := mustMoney(t, "100", "USD")

	_, err := vnd.Add(usd)
	require.Error(t, err)
	assert.True(t, domainerr.IsIllegalOperation(err))

	_, err = vnd.Sub(usd)
	require.Error(t, err)
	assert.True(t, domainerr.IsIllegalOperation(err))

	_, err = vnd.Compare(usd)
	require.Error(t, err)
	assert.True(t, domainerr.IsIllegalOperation(err))

	// Equality never fails; differing currencies are simply not equal.
	assert.False(t, vnd.Equal(usd))
}

func TestMoneyComparison(t *testing.T) {
	small := mustMoney(t, "10", "VND")
	big := mustMoney(t, "20", "VND")

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	gte, err := big.GreaterThanOrEqual(small)
	require.NoError(t, err)
	assert.True(t, gte)

	c, err := small.Compare(small)
	require.NoError(t, err)
	assert.Zero(t, c)

	// Value-based equality, not identity.
	same := mustMoney(t, "10.0000", "VND")
	assert.True(t, small.Equal(same))
}

func TestZeroMoney(t *testing.T) {
	z, err := ZeroMoney("VND")
	require.NoError(t, err)
	assert.True(t, z.IsZero())
	assert.Equal(t, "VND", z.Currency())

	_, err = ZeroMoney("")
	require.Error(t, err)
}

func TestMoneyString(t *testing.T) {
	m := mustMoney(t, "1234.5", "VND")
	assert.Equal(t, "1234.5000 VND", m.String())
}

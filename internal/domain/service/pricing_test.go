package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

func vnd(t *testing.T, amount int64) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyVND(decimal.NewFromInt(amount))
	require.NoError(t, err)
	return m
}

func TestCalculatePrice(t *testing.T) {
	s := NewPricingService()
	offer := &Offer{UnitPrice: decimal.NewFromInt(1000)}

	price, err := s.CalculatePrice(offer, 3)
	require.NoError(t, err)
	assert.True(t, price.Amount().Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "VND", price.Currency())

	// A bulk marker does not change the linear multiplication.
	bulk := &Offer{UnitPrice: decimal.NewFromInt(1000), MinQuantity: 10}
	price, err = s.CalculatePrice(bulk, 3)
	require.NoError(t, err)
	assert.True(t, price.Amount().Equal(decimal.NewFromInt(3000)))

	_, err = s.CalculatePrice(nil, 3)
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))

	for _, q := range []int{0, -1} {
		_, err = s.CalculatePrice(offer, q)
		require.Error(t, err, "quantity %d", q)
		assert.True(t, domainerr.IsValidation(err))
	}
}

func TestCalculateTax(t *testing.T) {
	s := NewPricingService()
	amount := vnd(t, 100000)

	tax, err := s.CalculateTax(&amount, 0.1)
	require.NoError(t, err)
	assert.True(t, tax.Amount().Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, amount.Currency(), tax.Currency())

	// Boundary rates are legal.
	for _, rate := range []float64{0, 1} {
		_, err = s.CalculateTax(&amount, rate)
		require.NoError(t, err)
	}

	_, err = s.CalculateTax(nil, 0.1)
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))

	for _, rate := range []float64{-0.01, 1.01} {
		_, err = s.CalculateTax(&amount, rate)
		require.Error(t, err, "rate %v", rate)
		assert.True(t, domainerr.IsValidation(err))
	}
}

func TestCalculateShippingFee(t *testing.T) {
	s := NewPricingService()
	order := vnd(t, 500000)

	fee, err := s.CalculateShippingFee(&order, "north", 10)
	require.NoError(t, err)
	assert.True(t, fee.Amount().Equal(decimal.NewFromInt(80000)), "30000 + 10*5000")
	assert.Equal(t, "VND", fee.Currency())

	// All zones compute identically.
	south, err := s.CalculateShippingFee(&order, "south", 10)
	require.NoError(t, err)
	assert.True(t, fee.Equal(south))

	// Always VND, even for a foreign-currency order.
	usdOrder, err := valueobject.NewMoneyFromFloat(100, "USD")
	require.NoError(t, err)
	fee, err = s.CalculateShippingFee(&usdOrder, "north", 1)
	require.NoError(t, err)
	assert.Equal(t, "VND", fee.Currency())
	assert.True(t, fee.Amount().Equal(decimal.NewFromInt(35000)))

	_, err = s.CalculateShippingFee(nil, "north", 1)
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))

	_, err = s.CalculateShippingFee(&order, "   ", 1)
	require.Error(t, err)
	assert.True(t, domainerr.IsValidation(err))

	for _, w := range []float64{0, -2} {
		_, err = s.CalculateShippingFee(&order, "north", w)
		require.Error(t, err, "weight %v", w)
		assert.True(t, domainerr.IsValidation(err))
	}
}

func TestApplyDiscount(t *testing.T) {
	s := NewPricingService()
	amount := vnd(t, 100000)

	discounted, err := s.ApplyDiscount(&amount, 0.1)
	require.NoError(t, err)
	assert.True(t, discounted.Amount().Equal(decimal.NewFromInt(90000)))

	full, err := s.ApplyDiscount(&amount, 1)
	require.NoError(t, err)
	assert.True(t, full.IsZero())

	none, err := s.ApplyDiscount(&amount, 0)
	require.NoError(t, err)
	assert.True(t, none.Equal(amount))

	_, err = s.ApplyDiscount(nil, 0.1)
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))

	for _, pct := range []float64{-0.1, 1.1} {
		_, err = s.ApplyDiscount(&amount, pct)
		require.Error(t, err, "pct %v", pct)
		assert.True(t, domainerr.IsValidation(err))
	}
}

func TestCalculateTotal(t *testing.T) {
	s := NewPricingService()
	subtotal := vnd(t, 500000)
	tax := vnd(t, 50000)
	shipping := vnd(t, 30000)
	discount := vnd(t, 25000)

	total, err := s.CalculateTotal(&subtotal, &tax, &shipping, &discount)
	require.NoError(t, err)
	assert.True(t, total.Amount().Equal(decimal.NewFromInt(555000)))

	// An over-large discount trips Money's non-negativity invariant.
	huge := vnd(t, 600000)
	_, err = s.CalculateTotal(&subtotal, &tax, &shipping, &huge)
	require.Error(t, err)
	assert.True(t, domainerr.IsValidation(err))
	assert.EqualError(t, err, "Amount cannot be negative")

	// Null checks name the missing parameter.
	_, err = s.CalculateTotal(nil, &tax, &shipping, &discount)
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))
	assert.Contains(t, err.Error(), "subtotal")

	_, err = s.CalculateTotal(&subtotal, nil, &shipping, &discount)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tax")

	_, err = s.CalculateTotal(&subtotal, &tax, nil, &discount)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shipping")

	_, err = s.CalculateTotal(&subtotal, &tax, &shipping, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discount")

	// Mixed currencies propagate Money's illegal-operation error.
	usd, err := valueobject.NewMoneyFromFloat(10, "USD")
	require.NoError(t, err)
	_, err = s.CalculateTotal(&subtotal, &usd, &shipping, &discount)
	require.Error(t, err)
	assert.True(t, domainerr.IsIllegalOperation(err))
}

func TestIsValidPrice(t *testing.T) {
	s := NewPricingService()
	assert.False(t, s.IsValidPrice(nil))
	price := vnd(t, 1)
	assert.True(t, s.IsValidPrice(&price))
}

package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

// DefaultCurrency is the marketplace base currency. Shipping fees are always
// denominated in it regardless of the order currency.
const DefaultCurrency = "VND"

// moneyScale is the number of fractional digits every amount is rounded to
// at construction (round half away from zero).
const moneyScale = 4

// Money is an immutable amount tagged with its currency. The amount is never
// negative and arithmetic between two Money values requires equal currencies.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney builds a Money from a decimal amount and currency code. The
// currency is trimmed and upper-cased; an empty currency or a negative
// amount fails validation. Pass an empty currency to use DefaultCurrency
// via NewMoneyVND.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		return Money{}, domainerr.Validation("Currency cannot be empty")
	}
	if amount.IsNegative() {
		return Money{}, domainerr.Validation("Amount cannot be negative")
	}
	return Money{amount: amount.Round(moneyScale), currency: cur}, nil
}

// NewMoneyVND builds a Money in the default currency.
func NewMoneyVND(amount decimal.Decimal) (Money, error) {
	return NewMoney(amount, DefaultCurrency)
}

// NewMoneyFromFloat is a convenience constructor for handler/seed code.
func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// NewMoneyFromString parses the amount with full decimal precision before
// rounding, so values coming off the wire do not pass through float64.
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, domainerr.Validationf("Invalid amount %q", amount)
	}
	return NewMoney(d, currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) sameCurrency(other Money, op string) error {
	if m.currency != other.currency {
		return domainerr.IllegalOperationf("Cannot %s money with different currencies: %s and %s", op, m.currency, other.currency)
	}
	return nil
}

// Add returns m + other. Fails when the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other, "add"); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Sub returns m - other. Fails when the currencies differ or when the
// result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other, "subtract"); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

// Mul scales the amount by factor, preserving the currency. A negative
// factor fails because the result would be negative.
func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(factor), m.currency)
}

// Div divides the amount by divisor, preserving the currency.
func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, domainerr.DivideByZero()
	}
	return NewMoney(m.amount.Div(divisor), m.currency)
}

// Compare returns -1, 0 or 1. Comparison across currencies is illegal.
func (m Money) Compare(other Money) (int, error) {
	if err := m.sameCurrency(other, "compare"); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c < 0, err
}

func (m Money) LessThanOrEqual(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c <= 0, err
}

func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c > 0, err
}

func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c >= 0, err
}

// Equal is value-based: same currency and numerically equal amount.
// Unlike Compare it never fails; differing currencies are simply not equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(moneyScale) + " " + m.currency
}

// Package service holds stateless domain services. They are pure functions
// of their inputs: no fields, no I/O, no clock, safe for concurrent use.
package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

// Shipping fee schedule, denominated in VND.
var (
	shippingBaseFee  = decimal.NewFromInt(30000)
	shippingPerKgFee = decimal.NewFromInt(5000)
)

// Offer is the pricing view of a seller's listing. MinQuantity marks a bulk
// offer; it is recognized but not yet discounted, so the price is linear in
// quantity regardless.
type Offer struct {
	UnitPrice   decimal.Decimal
	MinQuantity int
}

// PricingService computes prices, taxes, shipping fees and totals. Money
// arguments are pointers because absence is a contract violation the service
// reports explicitly rather than treating a zero value as a price.
type PricingService struct{}

func NewPricingService() *PricingService { return &PricingService{} }

// CalculatePrice returns unit price times quantity in the base currency.
func (s *PricingService) CalculatePrice(offer *Offer, quantity int) (valueobject.Money, error) {
	if offer == nil {
		return valueobject.Money{}, domainerr.NullArgument("offer")
	}
	if quantity <= 0 {
		return valueobject.Money{}, domainerr.Validation("Quantity must be greater than zero")
	}
	return valueobject.NewMoneyVND(offer.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// CalculateTax applies a rate in [0,1] to the amount, preserving its currency.
func (s *PricingService) CalculateTax(amount *valueobject.Money, rate float64) (valueobject.Money, error) {
	if amount == nil {
		return valueobject.Money{}, domainerr.NullArgument("amount")
	}
	if rate < 0 || rate > 1 {
		return valueobject.Money{}, domainerr.Validation("Tax rate must be between 0 and 1")
	}
	return valueobject.NewMoney(amount.Amount().Mul(decimal.NewFromFloat(rate)), amount.Currency())
}

// CalculateShippingFee computes base fee plus a per-kg charge. The result is
// always denominated in VND regardless of the order currency. The zone is
// required but does not differentiate the fee; all zones currently compute
// identically.
func (s *PricingService) CalculateShippingFee(orderValue *valueobject.Money, zone string, weight float64) (valueobject.Money, error) {
	if orderValue == nil {
		return valueobject.Money{}, domainerr.NullArgument("orderValue")
	}
	if strings.TrimSpace(zone) == "" {
		return valueobject.Money{}, domainerr.Validation("Shipping zone cannot be empty")
	}
	if weight <= 0 {
		return valueobject.Money{}, domainerr.Validation("Weight must be greater than zero")
	}
	fee := shippingBaseFee.Add(decimal.NewFromFloat(weight).Mul(shippingPerKgFee))
	return valueobject.NewMoneyVND(fee)
}

// ApplyDiscount reduces the amount by a percentage in [0,1].
func (s *PricingService) ApplyDiscount(amount *valueobject.Money, pct float64) (valueobject.Money, error) {
	if amount == nil {
		return valueobject.Money{}, domainerr.NullArgument("amount")
	}
	if pct < 0 || pct > 1 {
		return valueobject.Money{}, domainerr.Validation("Discount percentage must be between 0 and 1")
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(pct))
	return valueobject.NewMoney(amount.Amount().Mul(factor), amount.Currency())
}

// CalculateTotal composes subtotal + tax + shipping - discount. A discount
// larger than the rest is rejected by Money's non-negativity invariant; the
// resulting validation error propagates to the caller.
func (s *PricingService) CalculateTotal(subtotal, tax, shipping, discount *valueobject.Money) (valueobject.Money, error) {
	switch {
	case subtotal == nil:
		return valueobject.Money{}, domainerr.NullArgument("subtotal")
	case tax == nil:
		return valueobject.Money{}, domainerr.NullArgument("tax")
	case shipping == nil:
		return valueobject.Money{}, domainerr.NullArgument("shipping")
	case discount == nil:
		return valueobject.Money{}, domainerr.NullArgument("discount")
	}
	total, err := subtotal.Add(*tax)
	if err != nil {
		return valueobject.Money{}, err
	}
	total, err = total.Add(*shipping)
	if err != nil {
		return valueobject.Money{}, err
	}
	return total.Sub(*discount)
}

// IsValidPrice reports whether a price is present. A constructed Money is
// definitionally non-negative, so presence is the only check.
func (s *PricingService) IsValidPrice(price *valueobject.Money) bool {
	return price != nil
}

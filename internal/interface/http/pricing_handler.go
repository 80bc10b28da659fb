package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/service"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
	"github.com/oksasatya/go-marketplace-ddd/pkg/response"
	"github.com/oksasatya/go-marketplace-ddd/pkg/validation"
)

// PricingHandler exposes the stateless pricing calculations. It parses wire
// amounts into Money and hands them to the domain service untouched.
type PricingHandler struct {
	Svc *service.PricingService
}

func NewPricingHandler(svc *service.PricingService) *PricingHandler {
	return &PricingHandler{Svc: svc}
}

func moneyView(m valueobject.Money) gin.H {
	return gin.H{"amount": m.Amount().String(), "currency": m.Currency()}
}

func parseMoney(c *gin.Context, amount, currency string) (*valueobject.Money, bool) {
	m, err := valueobject.NewMoneyFromString(amount, currency)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return &m, true
}

type quoteRequest struct {
	UnitPrice string `json:"unit_price" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// Quote POST /api/pricing/quote — unit price times quantity, in VND.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	unit, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid unit_price", nil)
		return
	}
	price, err := h.Svc.CalculatePrice(&service.Offer{UnitPrice: unit}, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, moneyView(price), "quote", nil)
}

type totalRequest struct {
	Subtotal     string  `json:"subtotal" binding:"required"`
	Currency     string  `json:"currency" binding:"required,currency"`
	TaxRate      float64 `json:"tax_rate"`
	ShippingZone string  `json:"shipping_zone" binding:"required"`
	WeightKg     float64 `json:"weight_kg" binding:"required"`
	DiscountPct  float64 `json:"discount_pct"`
}

// Total POST /api/pricing/total — computes tax, shipping and discount from a
// subtotal and sums the order. Shipping is always VND, so a non-VND order
// currency fails the final sum with an illegal-operation error.
func (h *PricingHandler) Total(c *gin.Context) {
	var req totalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	subtotal, ok := parseMoney(c, req.Subtotal, req.Currency)
	if !ok {
		return
	}
	tax, err := h.Svc.CalculateTax(subtotal, req.TaxRate)
	if err != nil {
		writeError(c, err)
		return
	}
	shipping, err := h.Svc.CalculateShippingFee(subtotal, req.ShippingZone, req.WeightKg)
	if err != nil {
		writeError(c, err)
		return
	}
	discounted, err := h.Svc.ApplyDiscount(subtotal, req.DiscountPct)
	if err != nil {
		writeError(c, err)
		return
	}
	discount, err := subtotal.Sub(discounted)
	if err != nil {
		writeError(c, err)
		return
	}
	total, err := h.Svc.CalculateTotal(subtotal, &tax, &shipping, &discount)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"subtotal": moneyView(*subtotal),
		"tax":      moneyView(tax),
		"shipping": moneyView(shipping),
		"discount": moneyView(discount),
		"total":    moneyView(total),
	}, "order total", nil)
}

type shippingRequest struct {
	OrderAmount string  `json:"order_amount" binding:"required"`
	Currency    string  `json:"currency" binding:"required,currency"`
	Zone        string  `json:"zone" binding:"required"`
	WeightKg    float64 `json:"weight_kg" binding:"required"`
}

// Shipping POST /api/pricing/shipping
func (h *PricingHandler) Shipping(c *gin.Context) {
	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	order, ok := parseMoney(c, req.OrderAmount, req.Currency)
	if !ok {
		return
	}
	fee, err := h.Svc.CalculateShippingFee(order, req.Zone, req.WeightKg)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, moneyView(fee), "shipping fee", nil)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/service"
	"github.com/oksasatya/go-marketplace-ddd/pkg/validation"
)

func pricingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	h := NewPricingHandler(service.NewPricingService())
	r := gin.New()
	r.POST("/pricing/quote", h.Quote)
	r.POST("/pricing/shipping", h.Shipping)
	r.POST("/pricing/total", h.Total)
	return r
}

type pricingEnvelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, pricingEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	var env pricingEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func moneyFromView(t *testing.T, raw json.RawMessage) (decimal.Decimal, string) {
	t.Helper()
	var v struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(raw, &v))
	d, err := decimal.NewFromString(v.Amount)
	require.NoError(t, err)
	return d, v.Currency
}

func TestQuoteMultipliesUnitPrice(t *testing.T) {
	r := pricingRouter()
	w, env := doJSON(t, r, "/pricing/quote", `{"unit_price":"50000","quantity":3}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var amountStr, currency string
	require.NoError(t, json.Unmarshal(env.Data["amount"], &amountStr))
	require.NoError(t, json.Unmarshal(env.Data["currency"], &currency))
	amount, err := decimal.NewFromString(amountStr)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(150000)), "amount = %s", amount)
	assert.Equal(t, "VND", currency)
}

func TestQuoteRejectsZeroQuantity(t *testing.T) {
	r := pricingRouter()
	w, env := doJSON(t, r, "/pricing/quote", `{"unit_price":"50000","quantity":0}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestShippingFeeIsBasePlusPerKg(t *testing.T) {
	r := pricingRouter()
	w, env := doJSON(t, r, "/pricing/shipping", `{"order_amount":"200000","currency":"VND","zone":"north","weight_kg":2}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var amountStr string
	require.NoError(t, json.Unmarshal(env.Data["amount"], &amountStr))
	fee, err := decimal.NewFromString(amountStr)
	require.NoError(t, err)
	// 30000 base + 2kg * 5000
	assert.True(t, fee.Equal(decimal.NewFromInt(40000)), "fee = %s", fee)
}

func TestTotalSumsComponents(t *testing.T) {
	r := pricingRouter()
	w, env := doJSON(t, r, "/pricing/total", `{
		"subtotal":"100000","currency":"VND","tax_rate":0.1,
		"shipping_zone":"north","weight_kg":1,"discount_pct":0.05
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	total, currency := moneyFromView(t, env.Data["total"])
	assert.Equal(t, "VND", currency)
	// 100000 + 10000 tax + 35000 shipping - 5000 discount
	assert.True(t, total.Equal(decimal.NewFromInt(140000)), "total = %s", total)
}

func TestTotalRejectsCrossCurrencyShipping(t *testing.T) {
	r := pricingRouter()
	w, env := doJSON(t, r, "/pricing/total", `{
		"subtotal":"100","currency":"USD","tax_rate":0.1,
		"shipping_zone":"north","weight_kg":1,"discount_pct":0
	}`)

	// shipping is always VND, so a USD order cannot be summed
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Success)
}

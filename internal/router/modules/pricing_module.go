package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-marketplace-ddd/internal/container"
	handlers "github.com/oksasatya/go-marketplace-ddd/internal/interface/http"
	"github.com/oksasatya/go-marketplace-ddd/internal/interface/middleware"
)

// PricingModule exposes the stateless pricing calculations. No auth: the
// endpoints hold no state and leak nothing.
type PricingModule struct {
	Handler *handlers.PricingHandler
}

func NewPricingModule(h *handlers.PricingHandler) *PricingModule {
	return &PricingModule{Handler: h}
}

func (m *PricingModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/pricing/quote", rl, m.Handler.Quote)
	rg.POST("/pricing/shipping", rl, m.Handler.Shipping)
	rg.POST("/pricing/total", rl, m.Handler.Total)
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-marketplace-ddd/internal/container"
	handlers "github.com/oksasatya/go-marketplace-ddd/internal/interface/http"
	"github.com/oksasatya/go-marketplace-ddd/internal/interface/middleware"
	"github.com/oksasatya/go-marketplace-ddd/pkg/helpers"
)

// CatalogModule exposes the product catalog. Reads are public; writes
// require an authenticated session.
type CatalogModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.ProductHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/products/:id", readLimiter, m.Handler.Get)
	rg.GET("/products/slug/:slug", readLimiter, m.Handler.GetBySlug)
	rg.GET("/products/search", readLimiter, m.Handler.Search)
	rg.GET("/categories/:id/products", readLimiter, m.Handler.ListByCategory)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/products", m.Handler.Create)
		auth.POST("/products/:id/activate", m.Handler.Activate)
		auth.POST("/products/:id/deactivate", m.Handler.Deactivate)
		auth.POST("/products/:id/discontinue", m.Handler.Discontinue)
		auth.PUT("/products/:id/return-policy", m.Handler.UpdateReturnDays)
		auth.POST("/products/:id/skus", m.Handler.AddSku)
		auth.PUT("/products/:id/categories/:categoryID", m.Handler.AddCategory)
		auth.DELETE("/products/:id/categories/:categoryID", m.Handler.RemoveCategory)
		auth.POST("/products/:id/images", m.Handler.UploadImage)
	}
}

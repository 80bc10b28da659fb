package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-marketplace-ddd/internal/container"
	handlers "github.com/oksasatya/go-marketplace-ddd/internal/interface/http"
	"github.com/oksasatya/go-marketplace-ddd/internal/interface/middleware"
	"github.com/oksasatya/go-marketplace-ddd/pkg/helpers"
)

// CategoryModule exposes the category tree. Reads are public and cached;
// writes require an authenticated session.
type CategoryModule struct {
	Handler *handlers.CategoryHandler
	JWT     *helpers.JWTManager
}

func NewCategoryModule(h *handlers.CategoryHandler, jwt *helpers.JWTManager) *CategoryModule {
	return &CategoryModule{Handler: h, JWT: jwt}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/categories/tree", readLimiter, m.Handler.Tree)
	rg.GET("/categories", readLimiter, m.Handler.ListChildren)
	rg.GET("/categories/:id", readLimiter, m.Handler.Get)
	rg.GET("/categories/slug/:slug", readLimiter, m.Handler.GetBySlug)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/categories", m.Handler.Create)
		auth.PUT("/categories/:id", m.Handler.Update)
		auth.PUT("/categories/:id/parent", m.Handler.ChangeParent)
		auth.POST("/categories/:id/activate", m.Handler.Activate)
		auth.POST("/categories/:id/deactivate", m.Handler.Deactivate)
		auth.DELETE("/categories/:id", m.Handler.Delete)
	}
}

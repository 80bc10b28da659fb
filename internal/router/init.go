package router

import (
	app "github.com/oksasatya/go-marketplace-ddd/internal/application"
	"github.com/oksasatya/go-marketplace-ddd/internal/container"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/service"
	pginfra "github.com/oksasatya/go-marketplace-ddd/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-marketplace-ddd/internal/interface/http"
	"github.com/oksasatya/go-marketplace-ddd/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	productRepo := pginfra.NewProductRepository(container.GetPGPool())
	categoryRepo := pginfra.NewCategoryRepository(container.GetPGPool())

	userSvc := app.NewUserService(userRepo, jwt, container.GetRedis(), logger, container.GetEventPub(), cfg.OTPTTL)
	catalogSvc := app.NewCatalogService(productRepo, categoryRepo, container.GetGCS(), cfg.GCSBucket, logger, container.GetES(), cfg.ESProductsIndex, container.GetEventPub())
	categorySvc := app.NewCategoryService(categoryRepo, container.GetRedis(), logger, container.GetEventPub(), cfg.CategoryCacheTTL)
	pricingSvc := service.NewPricingService()

	userHandler := handlers.NewUserHandler(userSvc, jwt, logger, cfg, container.GetRabbitPub())
	authHandler := handlers.NewAuthHandler(userSvc, container.GetRedis(), logger, cfg, container.GetRabbitPub())
	productHandler := handlers.NewProductHandler(catalogSvc, logger)
	categoryHandler := handlers.NewCategoryHandler(categorySvc, logger)
	pricingHandler := handlers.NewPricingHandler(pricingSvc)
	emailHandler := handlers.NewEmailHandler(container.GetRabbitPub(), logger, cfg)

	r.Add(modules.New(userHandler, jwt))
	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewCatalogModule(productHandler, jwt))
	r.Add(modules.NewCategoryModule(categoryHandler, jwt))
	r.Add(modules.NewPricingModule(pricingHandler))
	r.Add(modules.NewEmailModule(emailHandler, jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

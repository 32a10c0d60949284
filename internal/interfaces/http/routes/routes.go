// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/config"
	"github.com/your-org/storefront-bff/internal/domain/bundle"
	"github.com/your-org/storefront-bff/internal/domain/cartapi"
	"github.com/your-org/storefront-bff/internal/domain/catalog"
	"github.com/your-org/storefront-bff/internal/domain/drawer"
	"github.com/your-org/storefront-bff/internal/domain/pdp"
	"github.com/your-org/storefront-bff/internal/domain/storefront"
	"github.com/your-org/storefront-bff/internal/domain/toast"
	"github.com/your-org/storefront-bff/internal/infrastructure/statestore"
	"github.com/your-org/storefront-bff/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-bff/internal/interfaces/http/middleware"
)

// SetupRoutes wires the fragment endpoints. All of them run behind the
// session middleware: every piece of UI state is keyed by the signed
// session cookie.
func SetupRoutes(rg *gin.RouterGroup, redisClient *redis.Client, catalogSvc *catalog.Service, cfg *config.Config, logger *logrus.Logger) {
	store := statestore.NewRedisStore(redisClient)
	api := cartapi.NewClient(cfg)
	toasts := toast.NewService(store, logger)
	drawerSvc := drawer.NewService(store, api, toasts, cfg, logger)
	flow := storefront.NewService(api, drawerSvc, toasts, logger)
	pdpSvc := pdp.NewService(store, catalogSvc, flow, toasts, cfg, logger)
	bundleSvc := bundle.NewService(store, catalogSvc, flow, cfg, logger)

	rg.Use(middleware.Session(cfg, logger))

	cartHandler := handlers.NewCartHandler(api)
	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
	}

	drawerHandler := handlers.NewDrawerHandler(drawerSvc)
	drawerGroup := rg.Group("/drawer")
	{
		drawerGroup.GET("", drawerHandler.GetDrawer)
		drawerGroup.POST("/open", drawerHandler.OpenDrawer)
		drawerGroup.POST("/close", drawerHandler.CloseDrawer)
		drawerGroup.POST("/lines/:key", drawerHandler.HandleLineAction)
	}

	productHandler := handlers.NewProductHandler(pdpSvc, catalogSvc)
	products := rg.Group("/products")
	{
		products.GET("/:slug/pdp", productHandler.GetProductForm)
		products.POST("/:slug/options", productHandler.SelectOption)
		products.POST("/:slug/quantity", productHandler.StepQuantity)
		products.POST("/:slug/add", productHandler.AddToCart)
	}

	bundleHandler := handlers.NewBundleHandler(bundleSvc, catalogSvc)
	bundles := rg.Group("/bundles")
	{
		bundles.GET("/:widget", bundleHandler.GetWidget)
		bundles.POST("/:widget/toggle", bundleHandler.Toggle)
		bundles.POST("/:widget/quantity", bundleHandler.StepQuantity)
		bundles.POST("/:widget/submit", bundleHandler.Submit)
	}

	toastHandler := handlers.NewToastHandler(toasts)
	rg.GET("/toast", toastHandler.GetToast)
}

// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"orderdesk/internal/domain/cart"
	"orderdesk/internal/domain/catalog"
	"orderdesk/internal/domain/checkout"
	"orderdesk/internal/infrastructure/http/v1/dto"
	"orderdesk/internal/infrastructure/http/v1/handlers"
	"orderdesk/internal/infrastructure/http/v1/middleware"
	"orderdesk/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Registry tracks live cart sessions.
	Registry *cart.Registry

	// CatalogSource loads the directory snapshot at session open.
	CatalogSource catalog.Source

	// Checkout finalizes carts against the external create endpoints.
	Checkout *checkout.Service

	// Logger for request logging.
	Logger *logger.Logger

	// Version reported by the info endpoint.
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	dto.RegisterBindings()

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Registry, cfg.Version)
	healthHandler.RegisterRoutes(router.Group("/health"))

	api := router.Group("/api/v1")
	{
		sessionHandler := handlers.NewSessionHandler(base, cfg.Registry, cfg.CatalogSource, cfg.Checkout)
		sessionHandler.RegisterRoutes(api.Group("/sessions"))
	}

	return router
}

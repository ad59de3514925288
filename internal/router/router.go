package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agencydesk/internal/handler"
	"agencydesk/internal/handler/api"
	"agencydesk/internal/middleware"
	"agencydesk/internal/notify"
	"agencydesk/internal/payhere"
	"agencydesk/internal/repository"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	db *gorm.DB,
	gateway *payhere.Gateway,
	notifier *notify.Notifier,
	logger *zap.Logger,
	apiKey string,
	replayTracker middleware.ReplayTracker,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	// Repositories
	repos := &api.Repos{
		Order:   repository.NewOrderRepository(db),
		Package: repository.NewPackageRepository(db),
	}

	// Handlers
	orderHandler := api.NewOrderHandler(repos, logger)
	packageHandler := api.NewPackageHandler(repos, logger)
	paymentHandler := handler.NewPaymentHandler(repos.Order, gateway, notifier, logger)

	// Admin API group behind token auth
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.APIAuth(apiKey))

	apiGroup.GET("/orders", orderHandler.List)
	apiGroup.POST("/orders", orderHandler.Create)
	apiGroup.GET("/orders/:id", orderHandler.Get)
	apiGroup.PUT("/orders/:id/status", orderHandler.UpdateStatus)

	apiGroup.GET("/packages", packageHandler.List)
	apiGroup.POST("/packages", packageHandler.Create)
	apiGroup.PUT("/packages/:code", packageHandler.Update)
	apiGroup.DELETE("/packages/:code", packageHandler.Delete)

	// Gateway-facing routes. The notify endpoint is unauthenticated at the
	// transport level; authenticity comes from the signature check. The
	// replay observer only logs redeliveries.
	paymentGroup := e.Group("/payment")
	paymentGroup.POST("/payhere/notify", paymentHandler.Notify,
		middleware.CallbackReplayLog(replayTracker, logger))
	paymentGroup.GET("/checkout/:id", paymentHandler.Checkout)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

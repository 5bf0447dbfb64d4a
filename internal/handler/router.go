package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-concierge/internal/handler/api"
	"booking-concierge/internal/handler/middleware"
	"booking-concierge/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	webhookHandler *api.WebhookHandler,
	healthHandler *api.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	signatureMiddleware *middleware.SignatureMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, webhookHandler, healthHandler, authMiddleware, signatureMiddleware, rateLimitMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	webhookHandler *api.WebhookHandler,
	healthHandler *api.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	signatureMiddleware *middleware.SignatureMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	engine.GET("/health", healthHandler.Live)
	engine.GET("/health/ready", healthHandler.Ready)

	webhook := engine.Group("/webhook")
	webhook.Use(rateLimitMiddleware.Limit())
	{
		receive := webhook.Group("")
		receive.Use(signatureMiddleware.Verify())
		addRoutes(receive, []route{
			{Method: http.MethodPost, Path: "/receive", Handler: webhookHandler.Receive},
		})

		query := webhook.Group("")
		query.Use(authMiddleware.RequireAuth())
		addRoutes(query, []route{
			{Method: http.MethodPost, Path: "/query", Handler: webhookHandler.Query},
		})

		addRoutes(webhook, []route{
			{Method: http.MethodGet, Path: "/health", Handler: healthHandler.Live},
		})
	}
}

func addRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		group.Handle(r.Method, r.Path, handlers...)
	}
}

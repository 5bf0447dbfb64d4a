package components

import (
	"booking-concierge/internal/handler"
	"booking-concierge/internal/handler/api"
	"booking-concierge/internal/handler/middleware"
	"booking-concierge/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewWebhookHandler,
		api.NewHealthHandler,
		middleware.NewAuthMiddleware,
		NewSignatureMiddleware,
		NewRateLimitMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewSignatureMiddleware(cfg config.Config) *middleware.SignatureMiddleware {
	return middleware.NewSignatureMiddleware(cfg.Webhook)
}

func NewRateLimitMiddleware(cfg config.Config) *middleware.RateLimitMiddleware {
	return middleware.NewRateLimitMiddleware(cfg.Webhook)
}

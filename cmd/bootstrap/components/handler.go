package components

import (
	"access-scheduler/internal/handler"
	"access-scheduler/internal/handler/api"
	"access-scheduler/internal/handler/middleware"
	"access-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		middleware.NewCancelAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimitMiddleware {
			return middleware.NewRateLimitMiddleware(cfg.Booking)
		},
	),
	fx.Invoke(handler.NewRouter),
)

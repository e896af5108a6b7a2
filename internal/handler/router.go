package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"access-scheduler/internal/handler/api"
	"access-scheduler/internal/handler/middleware"
	"access-scheduler/internal/pkg/config"
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
	logger *middleware.Logger,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	cancelAuth *middleware.CancelAuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, bookingHandler, availabilityHandler, cancelAuth, rateLimit)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	cancelAuth *middleware.CancelAuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addRoutes(engine.Group(""), []route{
		{Method: http.MethodPost, Path: "/book", Handler: bookingHandler.CreateBooking, Mw: []gin.HandlerFunc{rateLimit.Limit()}},
		{Method: http.MethodGet, Path: "/book/:id", Handler: bookingHandler.GetBooking},
		{Method: http.MethodDelete, Path: "/book/:id", Handler: bookingHandler.CancelBooking, Mw: []gin.HandlerFunc{cancelAuth.RequireToken()}},
		{Method: http.MethodGet, Path: "/free-slots", Handler: availabilityHandler.FreeSlots},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		handlers := append(r.Mw, r.Handler)
		group.Handle(r.Method, r.Path, handlers...)
	}
}

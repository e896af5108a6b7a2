package middleware

import (
	"strconv"
	"time"

	"access-scheduler/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request latency labeled by matched route, not the
// raw path, to keep cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

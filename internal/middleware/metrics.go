package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"stackforge/services"
)

/**
 * HTTP request statistics middleware
 * @description
 * - Counts requests received by the status server
 * - Records request handling time
 * - Distinguishes successful and failed requests
 * - Feeds the request data shown by the readiness probe
 */
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		services.IncrementRequestCount(route)
		services.RecordRequestDuration(route, duration)

		if statusCode >= 400 {
			services.IncrementErrorCount(route)
		}
	}
}

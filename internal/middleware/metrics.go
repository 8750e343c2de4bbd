package middleware

import (
	"time"

	"restaurant-picker-api/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per matched route. Unmatched
// paths share one label so scanners cannot blow up the series count.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// Package middleware holds gin middleware tied to internal services.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aiinbox/dayflow-api/internal/service"
)

// Metrics returns middleware that records request metrics on the provided
// service. The scrape endpoint itself is excluded to keep series cardinality
// meaningful.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		// Unmatched routes fall back to the raw path so 404 floods stay visible.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

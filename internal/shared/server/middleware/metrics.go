package middleware

import (
	"github.com/gin-gonic/gin"

	"resumegen/internal/shared/metrics"
)

// Metrics counts requests by route pattern. The metrics endpoint itself is skipped.
func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		rec.ObserveRequest(c.Request.Method, path, c.Writer.Status())
	}
}

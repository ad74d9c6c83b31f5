package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"remodelsite/internal/pkg/metrics"
)

// Metrics records request counts and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordRequest(c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

package middleware

import (
	"strconv"
	"time"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/metrics"

	"github.com/gin-gonic/gin"
)

// Instrument records request duration labelled by route template.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

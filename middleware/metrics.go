package middleware

import (
	"time"

	"safarexpress/utils"

	"github.com/gin-gonic/gin"
)

// Metrics records every request in the registry, keyed by method and
// matched route pattern.
func Metrics(m *utils.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		m.Observe(c.Request.Method+" "+path, c.Writer.Status(), time.Since(start))
	}
}

package middleware

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the conservative response headers browsers honour for
// a JSON API.
func SecurityHeaders() gin.HandlerFunc {
	headers := secure.New(secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
	})
	return func(c *gin.Context) {
		c.Header("Cross-Origin-Resource-Policy", "same-origin")
		headers(c)
	}
}

package handlers

import (
	"safarexpress/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the middleware they need.
type HandlerBundle struct {
	Auth    *AuthHandler
	Booking *BookingHandler
	Public  *PublicHandler
	Admin   *AdminHandler
	Health  *HealthHandler

	Tokens middleware.AccessTokenVerifier
	// AuthLimiter and RequestLimiter only wrap the /auth group.
	AuthLimiter    gin.HandlerFunc
	RequestLimiter gin.HandlerFunc
}

package routes

import (
	"fmt"
	"time"

	"safarexpress/handlers"
	"safarexpress/middleware"
	"safarexpress/models"
	"safarexpress/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterAuthRoutes registers sign-up, sign-in and token rotation.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		if hb.RequestLimiter != nil {
			auth.Use(hb.RequestLimiter)
		}
		limited := auth.Group("")
		if hb.AuthLimiter != nil {
			limited.Use(hb.AuthLimiter)
		}
		limited.POST("/register", hb.Auth.RegisterHandler)
		limited.POST("/login", hb.Auth.LoginHandler)

		auth.POST("/refresh", hb.Auth.RefreshHandler)
		auth.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for signed-in customers.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.Use(middleware.Authenticate(hb.Tokens))
		bookings.POST("", hb.Booking.CreateBookingHandler)
		bookings.GET("", hb.Booking.ListBookingsHandler)
		bookings.GET("/:id", hb.Booking.GetBookingHandler)
		bookings.GET("/:id/events", hb.Booking.GetBookingEventsHandler)
		bookings.PATCH("/:id/status", middleware.RequireRole(models.RoleAdmin), hb.Booking.UpdateStatusHandler)
	}
}

func RegisterPublicRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	public := api.Group("/public")
	{
		public.POST("/search", hb.Public.SearchHandler)
		public.POST("/bookings", hb.Public.CreateGuestBookingHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	admin := api.Group("/admin")
	{
		admin.Use(middleware.Authenticate(hb.Tokens), middleware.RequireRole(models.RoleAdmin))
		admin.GET("/health-summary", hb.Admin.HealthSummaryHandler)
		admin.GET("/audit-logs", hb.Admin.AuditLogsHandler)
		admin.GET("/routes", hb.Admin.ListRoutesHandler)
		admin.POST("/routes", hb.Admin.CreateRouteHandler)
		admin.GET("/cabs", hb.Admin.ListCabsHandler)
		admin.POST("/cabs", hb.Admin.CreateCabHandler)
		admin.GET("/booking-alerts", hb.Admin.BookingAlertsHandler)
	}
}

// RegisterHealthRoutes registers the health checks outside the versioned prefix.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.PingHandler)
	r.GET("/api/v1/health", hb.Health.PingHandler)
	r.GET("/health/live", hb.Health.LiveHandler)
	r.GET("/health/ready", hb.Health.ReadyHandler)
}

// RegisterLegacyRoutes keeps the unversioned booking endpoint alive for
// older clients.
func RegisterLegacyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/bookings", hb.Public.LegacyCreateBookingHandler)
}

// UseGlobalMiddleware installs the middleware every request passes through.
// Metrics and the request logger sit outside the panic handler so that
// recovered requests are still counted and logged.
func UseGlobalMiddleware(r *gin.Engine, metrics *utils.Metrics, logger *zap.Logger) {
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(utils.ErrorHandler())
}

func notFound(c *gin.Context) {
	utils.RespondError(c, utils.NotFound("route_not_found",
		fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path)))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", handlers.IdempotencyKeyHeader, utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r, hb)
	RegisterLegacyRoutes(r, hb)

	api := r.Group("/api/v1")
	RegisterAuthRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterPublicRoutes(api, hb)
	RegisterAdminRoutes(api, hb)

	r.NoRoute(notFound)
}

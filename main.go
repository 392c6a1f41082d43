package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safarexpress/config"
	"safarexpress/cron"
	"safarexpress/database"
	auditRepo "safarexpress/database/repository/audit"
	bookingRepo "safarexpress/database/repository/booking"
	catalogRepo "safarexpress/database/repository/catalog"
	idempotencyRepo "safarexpress/database/repository/idempotency"
	tokenRepo "safarexpress/database/repository/token"
	userRepo "safarexpress/database/repository/user"
	"safarexpress/handlers"
	"safarexpress/middleware"
	"safarexpress/routes"
	"safarexpress/services/admin"
	"safarexpress/services/auth"
	"safarexpress/services/booking"
	"safarexpress/services/events"
	"safarexpress/services/token"
	"safarexpress/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if err := config.AppConfig.Validate(); err != nil {
		logger.Sugar().Fatalf("main: invalid configuration: %v", err)
	}
	utils.RegisterValidators()

	rootCtx, stopMonitors := context.WithCancel(context.Background())
	defer stopMonitors()

	db, err := database.InitDB(rootCtx)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	redisClient, err := utils.InitCache(rootCtx)
	if err != nil {
		logger.Sugar().Warnf("main: continuing without Redis: %v", err)
	}

	var redisPing utils.Pinger
	if redisClient != nil {
		redisPing = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	health := utils.NewHealthMonitor(
		func(ctx context.Context) error { return database.MongoClient.Ping(ctx, nil) },
		redisPing,
		15*time.Second,
	)
	health.Start(rootCtx)

	metrics := utils.NewMetrics()
	metrics.Reset()

	// repositories.
	users := userRepo.NewMongoUserRepo(db)
	refreshTokens := tokenRepo.NewMongoRefreshTokenRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	idempotency := idempotencyRepo.NewMongoIdempotencyRepo(db)
	audits := auditRepo.NewMongoAuditRepo(db)
	catalog := catalogRepo.NewMongoCatalogRepo(db)

	signer := token.NewService(
		config.AppConfig.JWTAccessSecret,
		config.AppConfig.JWTRefreshSecret,
		config.AppConfig.JWTAccessTTL,
		config.AppConfig.JWTRefreshTTL,
	)

	publisher, err := events.NewPublisher(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize event publisher: %v", err)
	}
	var worker *asynq.Server
	if config.AppConfig.EventsBackend == "asynq" {
		worker = cron.InitBookingEventWorker(cron.LogNotifier{Logger: logger})
	}

	// services.
	authService := auth.NewAuthService(users, refreshTokens, signer, config.AppConfig.BcryptCost)
	bookingService := booking.NewBookingService(bookings, idempotency, audits, catalog, publisher)
	adminService := admin.NewAdminService(audits, catalog, bookings, metrics, health)

	// bootstrap.
	if config.AppConfig.AdminEmail != "" {
		if _, err := authService.EnsureAdmin(rootCtx, config.AppConfig.AdminEmail,
			config.AppConfig.AdminPassword, config.AppConfig.AdminName); err != nil {
			logger.Sugar().Errorf("main: admin bootstrap failed: %v", err)
		}
	}
	if config.AppConfig.SeedCatalog {
		if _, err := adminService.SeedCatalog(rootCtx); err != nil {
			logger.Sugar().Errorf("main: catalog seed failed: %v", err)
		}
	}

	attempts := middleware.NewAttemptCounter(redisClient, config.AppConfig.AuthRateLimit, config.AppConfig.AuthRateWindow)
	handlerBundle := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(authService),
		Booking: handlers.NewBookingHandler(bookingService),
		Public:  handlers.NewPublicHandler(bookingService),
		Admin:   handlers.NewAdminHandler(adminService),
		Health:  handlers.NewHealthHandler(health),

		Tokens:         signer,
		AuthLimiter:    middleware.AuthRateLimit(attempts),
		RequestLimiter: middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.UseGlobalMiddleware(router, metrics, logger)
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.AllowedOrigins())

	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stopMonitors()
	if worker != nil {
		worker.Shutdown()
	}
	if err := publisher.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

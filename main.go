package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/HSouheill/coffee_backend/config"
	"github.com/HSouheill/coffee_backend/controllers"
	"github.com/HSouheill/coffee_backend/middleware"
	"github.com/HSouheill/coffee_backend/repositories"
	"github.com/HSouheill/coffee_backend/routes"
	"github.com/HSouheill/coffee_backend/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := config.ConnectDB(ctx, cfg, logger)
	if err != nil {
		cancel()
		logger.Fatal("MongoDB connection error", zap.Error(err))
	}
	db := client.Database(cfg.DBName)
	if err := config.EnsureIndexes(ctx, db, logger); err != nil {
		logger.Warn("Failed to ensure indexes", zap.Error(err))
	}
	redisClient := config.ConnectRedis(ctx, cfg, logger)
	cancel()

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = services.NewCustomValidator()

	// X-Forwarded-For is only honoured behind a trusted proxy
	ipExtractor := echo.ExtractIPDirect()
	if cfg.TrustProxy {
		ipExtractor = echo.ExtractIPFromXFFHeader()
	}
	e.IPExtractor = ipExtractor

	rateLimiter := middleware.NewRateLimiter()
	rateLimiter.SetIPExtractor(ipExtractor)
	defer rateLimiter.Stop()

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.NewCORSConfig(cfg.CORSAllowedOrigins)))
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		ImageDomains: cfg.ImageDomains,
		HSTS:         !cfg.IsDevelopment(),
	}))
	e.Use(echoMiddleware.BodyLimit("1M"))
	e.Use(rateLimiter.RateLimit())

	// Initialize repositories
	adminRepo := repositories.NewAdminRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	galleryRepo := repositories.NewGalleryRepository(db)

	// Initialize services
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	authService := services.NewAuthService(adminRepo, tokens, services.LockoutPolicy{
		MaxAttempts:  cfg.LoginMaxAttempts,
		LockDuration: cfg.LoginLockDuration,
	}, logger)
	adminService := services.NewAdminService(adminRepo, logger)
	menuService := services.NewMenuService(menuRepo, logger)
	galleryService := services.NewGalleryService(galleryRepo, logger)
	searchService := services.NewSearchService(menuRepo)

	// The cache stays disabled without Redis; the store must be an untyped nil then
	var cacheStore middleware.CacheStore
	if redisClient != nil {
		cacheStore = middleware.NewRedisCacheStore(redisClient)
	}
	cache := middleware.NewResponseCache(cacheStore, cfg.PublicCacheTTL, logger)

	routes.SetupRoutes(e, routes.Handlers{
		Auth:    controllers.NewAuthController(authService, adminService),
		Admins:  controllers.NewAdminController(adminService),
		Menu:    controllers.NewMenuController(menuService),
		Gallery: controllers.NewGalleryController(galleryService),
		Public:  controllers.NewPublicController(menuService, galleryService),
		Search:  controllers.NewSearchController(searchService),
		Health: controllers.NewHealthController(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}),
	}, authService, cache)

	// Start server
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error("MongoDB disconnect failed", zap.Error(err))
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/wahinekai/memberdb-backend/internal/config"
	"github.com/wahinekai/memberdb-backend/internal/docstore"
	"github.com/wahinekai/memberdb-backend/internal/domain"
	"github.com/wahinekai/memberdb-backend/internal/handler"
	"github.com/wahinekai/memberdb-backend/internal/middleware"
	"github.com/wahinekai/memberdb-backend/internal/repository/cache"
	"github.com/wahinekai/memberdb-backend/internal/repository/directory"
	"github.com/wahinekai/memberdb-backend/internal/repository/members"
	"github.com/wahinekai/memberdb-backend/internal/repository/memory"
	"github.com/wahinekai/memberdb-backend/internal/repository/postgres"
	"github.com/wahinekai/memberdb-backend/internal/repository/storage"
	"github.com/wahinekai/memberdb-backend/internal/retry"
	"github.com/wahinekai/memberdb-backend/internal/service"
	"github.com/wahinekai/memberdb-backend/internal/websocket"
)

// @title Wahine Kai Member Database API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	policy := retry.DefaultPolicy()
	policy.MaxRetries = cfg.StoreMaxRetries
	policy.Delay = cfg.StoreRetryDelay

	// Document store and search engine
	registry := postgres.NewRegistry(int32(cfg.DBMaxConns))
	defer registry.Close()

	var store docstore.Store
	var searchRepo domain.SearchRepository
	var searchCache *cache.SearchCache

	switch cfg.StoreDriver {
	case config.DriverMemory:
		store = memory.NewDocumentStore()
		log.Warn().Msg("Using in-memory document store; data is lost on exit")
	default:
		pool, err := registry.Pool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure schema")
		}
		log.Info().Msg("Connected to database")

		store = postgres.NewDocumentStore(pool)
		searchRepo = postgres.NewSearchRepository(pool)

		if cfg.Redis.Addr != "" {
			client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			defer client.Close()
			searchCache = cache.NewSearchCache(searchRepo, client, cfg.Redis.TTL)
			searchRepo = searchCache
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Search cache enabled")
		}
	}

	// Directory
	var directoryRepo domain.DirectoryRepository = directory.NoOpDirectory{}
	if cfg.DirectoryEnabled() {
		auth0Dir, err := directory.NewAuth0Directory(ctx, cfg.Auth0Domain, cfg.Auth0MgmtClientID, cfg.Auth0MgmtClientSecret)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Auth0 directory client")
		}
		directoryRepo = auth0Dir
	}

	// Photo storage is optional
	var uploadRepo domain.UploadRepository
	if cfg.S3.Bucket != "" {
		s3Repo, err := storage.NewS3UploadRepository(ctx, cfg.S3, policy)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize S3 storage; photo uploads disabled")
		} else {
			uploadRepo = s3Repo
		}
	}

	// Initialize repositories and services
	userRepo := members.NewUserRepository(store, policy)
	hub := websocket.NewHub()

	memberService := service.NewMemberService(userRepo, searchRepo, directoryRepo)
	memberService.SetEventPublisher(hub)
	if searchCache != nil {
		memberService.SetSearchInvalidator(searchCache)
	}
	photoService := service.NewPhotoService(uploadRepo, memberService)
	profileService := service.NewProfileService(memberService)

	// Initialize auth
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, userRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket token validator")
	}
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, middleware.DefaultBurstSize)
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Member:    handler.NewMemberHandler(memberService, photoService),
		Profile:   handler.NewProfileHandler(profileService),
		WebSocket: handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API docs
	if !cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
	e.GET("/openapi.json", handler.NewOpenAPIHandler(cfg.Port, cfg.PublicAPIURL).ServeOpenAPI)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, memberService, rateLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

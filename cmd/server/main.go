package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/solarline/quotation-service/config"
	"github.com/solarline/quotation-service/internal/auth"
	"github.com/solarline/quotation-service/internal/catalog"
	"github.com/solarline/quotation-service/internal/database"
	"github.com/solarline/quotation-service/internal/handlers"
	"github.com/solarline/quotation-service/internal/middleware"
	"github.com/solarline/quotation-service/internal/quotation"
	"github.com/solarline/quotation-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting quotation service")

	if cfg.Database.URL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET not set")
	}

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.GetConfigFromEnv())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}

	pool, err := database.Connect(
		ctx,
		cfg.Database.URL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	store := database.NewStore(pool)
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply database schema")
	}
	logger.Info().Msg("Database connected")

	generatorConfig := &quotation.Config{
		PanelLimit:           cfg.Generator.PanelLimit,
		InverterLimit:        cfg.Generator.InverterLimit,
		MountingLimit:        cfg.Generator.MountingLimit,
		EarthingLimit:        cfg.Generator.EarthingLimit,
		DefaultMaxQuotations: cfg.Generator.DefaultMaxQuotations,
	}
	generator := quotation.NewGenerator(store, store, store, generatorConfig, quotation.NewMetricsRecorder())
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(requestLogger(logger))
	router.Use(middleware.RateLimit(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
	}))

	healthHandler := handlers.NewHealthHandler(store)
	componentHandler := handlers.NewComponentHandler(store)
	inventoryHandler := handlers.NewInventoryHandler(store, generator, generatorConfig)
	quotationHandler := handlers.NewQuotationHandler(generator)
	batchHandler := handlers.NewBatchHandler(store)
	authHandler := handlers.NewAuthHandler(store, tokens)

	revoked := func(c *gin.Context, tokenID string) (bool, error) {
		return store.IsTokenRevoked(c.Request.Context(), tokenID)
	}
	requireAuth := middleware.RequireAuth(tokens, revoked)

	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", requireAuth, authHandler.Logout)
		authGroup.POST("/change-password", requireAuth, authHandler.ChangePassword)
	}

	api := router.Group("/api")
	{
		for slug, cat := range catalog.RouteSlugs() {
			group := api.Group("/" + slug)
			group.GET("", componentHandler.List(cat))
			group.GET("/:id", componentHandler.Get(cat))
			group.POST("", requireAuth, middleware.RequireAdmin(), componentHandler.Create(cat))
		}

		inventory := api.Group("/inventory")
		inventory.Use(requireAuth)
		{
			inventory.POST("", inventoryHandler.Add)
			inventory.GET("/:userId", inventoryHandler.Get)
			inventory.GET("/:userId/quotations", inventoryHandler.Quotations)
		}

		quotations := api.Group("/quotations")
		{
			quotations.POST("", quotationHandler.Generate)
			quotations.GET("/batches/:batchId", requireAuth, batchHandler.Get)
			quotations.GET("/batches/:batchId/export", requireAuth, batchHandler.Export)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "quotation-service").Logger()
	zlog.Logger = logger
	return &logger
}

func requestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("HTTP request")
	}
}

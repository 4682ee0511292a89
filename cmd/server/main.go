package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/adapter/ai/gemini"
	"github.com/seu-repo/tradeinsight/internal/adapter/cache"
	"github.com/seu-repo/tradeinsight/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/tradeinsight/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/tradeinsight/internal/adapter/queue"
	"github.com/seu-repo/tradeinsight/internal/adapter/storage/postgres"
	"github.com/seu-repo/tradeinsight/internal/adapter/vault"
	wsAdapter "github.com/seu-repo/tradeinsight/internal/adapter/websocket"
	"github.com/seu-repo/tradeinsight/internal/observability/telemetry"
	"github.com/seu-repo/tradeinsight/internal/ports"
	"github.com/seu-repo/tradeinsight/internal/service/advisor"
	"github.com/seu-repo/tradeinsight/internal/service/analytics"
	"github.com/seu-repo/tradeinsight/internal/service/auth"
	"github.com/seu-repo/tradeinsight/internal/service/dataset"
	"github.com/seu-repo/tradeinsight/internal/service/email"
	"github.com/seu-repo/tradeinsight/internal/service/health"
	"github.com/seu-repo/tradeinsight/internal/service/ingest"
	"github.com/seu-repo/tradeinsight/pkg/config"
)

const serviceName = "tradeinsight"

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// 2. Load Configuration (.env, config file, environment, then Vault)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Vault.Enabled {
		secrets, err := vault.NewSecretManager(cfg.Vault, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Vault client", zap.Error(err))
		}
		secrets.Apply(context.Background(), cfg)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	logger.Info("Starting TradeInsight",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	endpoint := ""
	if cfg.OpenTelemetry.Enabled {
		endpoint = cfg.OpenTelemetry.Jaeger.Endpoint
	}
	tracerProvider, err := telemetry.InitTracer(cfg.OpenTelemetry.ServiceName, cfg.App.Version, endpoint, cfg.OpenTelemetry.Jaeger.SamplerParam)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 4. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer postgres.Close(db)

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 5. Initialize Cache (Redis, or in-process when unset or unreachable)
	var appCache ports.Cache
	if cfg.Redis.URL != "" {
		appCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to local cache", zap.Error(err))
		}
	}
	if appCache == nil {
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	// 6. Initialize Message Queue (NATS, RabbitMQ or in-process)
	messageQueue, err := queue.New(cfg.Queue.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	// 7. Initialize Repositories
	userRepo := postgres.NewUserRepository(db, logger)
	datasetRepo := postgres.NewDatasetRepository(db, logger)

	// 8. Initialize Services (Business Logic Layer)
	provider := ingest.NewDefaultProvider(logger)
	tokens := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenDuration, appCache, logger)
	authService := auth.NewService(userRepo, tokens, logger)
	datasetService := dataset.NewService(datasetRepo, provider, messageQueue, logger)
	analyticsService := analytics.NewService(datasetService, appCache, cfg.Cache.AnalyticsTTL, logger)

	emailService, err := email.NewService(&email.Config{
		Provider:       cfg.Email.Provider,
		FromEmail:      cfg.Email.From,
		FromName:       cfg.Email.FromName,
		SendGridAPIKey: cfg.Email.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	// 9. Initialize Gemini Client (AI advisor). Without a key the advisor answers ErrAINotConfigured.
	var llm ports.TextGenerator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini client", zap.Error(err))
		}
		llm = client
	} else {
		logger.Warn("Gemini API key not set, AI endpoints disabled")
	}
	advisorService := advisor.NewService(llm, logger)

	// 10. Initialize WebSocket Hub (dataset events)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	wsHub := wsAdapter.NewHub(logger)
	go wsHub.Run(ctx)

	if err := subscribeDatasetEvents(messageQueue, wsHub, analyticsService, logger); err != nil {
		logger.Fatal("Failed to subscribe to dataset events", zap.Error(err))
	}

	// 11. Health checks
	healthService := health.NewService(cfg.App.Version, logger)
	healthService.RegisterPing("database", false, func(ctx context.Context) error {
		return postgres.Ping(db)
	})
	healthService.RegisterPing("cache", true, func(ctx context.Context) error {
		return appCache.Ping()
	})
	if pinger, ok := messageQueue.(queue.Pinger); ok {
		healthService.RegisterPing("queue", true, func(ctx context.Context) error {
			return pinger.Ping()
		})
	}

	// 12. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		BodyLimit:             cfg.Limits.MaxRequestBodySize,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}
	app.Use(middleware.Metrics())
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker("http", logger))
	}

	// Health Check Endpoints
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	authRequired := middleware.AuthRequired(authService)

	// WebSocket for dataset events
	handlers.NewEventsHandler(wsHub, logger).Register(app, authRequired)

	// API v1 Routes
	v1 := app.Group("/api/v1")

	// Auth routes (public)
	authHandler := handlers.NewAuthHandler(authService, logger)
	authHandler.RegisterPublic(v1)

	// Protected routes
	protected := v1.Group("", authRequired)
	authHandler.RegisterProtected(protected)
	handlers.NewDatasetHandler(datasetService, provider, logger).Register(protected)
	handlers.NewAnalyticsHandler(analyticsService, logger).Register(protected)
	handlers.NewAIHandler(advisorService, datasetService, analyticsService, emailService, logger).Register(protected)

	// 13. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 14. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	stop()

	logger.Info("Server exited gracefully")
}

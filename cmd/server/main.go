package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/greenauction/backend/internal/application/catalog"
	identityapp "github.com/greenauction/backend/internal/application/identity"
	tradeapp "github.com/greenauction/backend/internal/application/trade"
	"github.com/greenauction/backend/internal/infrastructure/auth"
	"github.com/greenauction/backend/internal/infrastructure/cache"
	"github.com/greenauction/backend/internal/infrastructure/config"
	"github.com/greenauction/backend/internal/infrastructure/event"
	"github.com/greenauction/backend/internal/infrastructure/logger"
	"github.com/greenauction/backend/internal/infrastructure/payment"
	"github.com/greenauction/backend/internal/infrastructure/persistence"
	"github.com/greenauction/backend/internal/infrastructure/storage"
	"github.com/greenauction/backend/internal/infrastructure/telemetry"
	"github.com/greenauction/backend/internal/interfaces/http/handler"
	"github.com/greenauction/backend/internal/interfaces/http/middleware"
	"github.com/greenauction/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry comes first so the bridged logger is used everywhere else
	providers, err := telemetry.Setup(context.Background(), cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := providers.BridgeLogger(baseLog)
	defer func() {
		_ = logger.Sync(log)
	}()
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	log.Info("Starting GreenAuction backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			DBName:          "postgresql",
			IncludeVars:     !cfg.App.IsProduction(),
			SlowQueryThresh: 200 * time.Millisecond,
		}, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	priceHistoryRepo := persistence.NewGormPriceHistoryRepository(db.DB)

	// Redis backs the token blacklist and the ranking cache when reachable
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist and ranking cache", zap.Error(err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	var tokenBlacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	// Marketplace metrics
	marketMetrics, err := telemetry.NewMarketMetrics(providers.Meter("greenauction/market"))
	if err != nil {
		log.Fatal("Failed to create marketplace metrics", zap.Error(err))
	}

	// External adapters
	licenseStorage := newLicenseStorage(cfg, log)
	kakaoPay, err := payment.NewGateway(cfg, log)
	if err != nil {
		log.Fatal("Failed to create KakaoPay client", zap.Error(err))
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	rankingService := tradeapp.NewRankingService(orderRepo, newRankingCache(cfg.Ranking, redisClient), log)

	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist, log)
	authService.SetSellerRankLookup(rankingService)

	licensePolicy := identityapp.DefaultLicensePolicy()
	if cfg.Storage.MaxLicenseSize > 0 {
		licensePolicy.MaxSize = cfg.Storage.MaxLicenseSize
	}
	if len(cfg.Storage.AllowedExtensions) > 0 {
		licensePolicy.AllowedExtensions = cfg.Storage.AllowedExtensions
	}
	if cfg.Storage.PresignExpiration > 0 {
		licensePolicy.URLExpiry = cfg.Storage.PresignExpiration
	}
	sellerService := identityapp.NewSellerService(userRepo, licenseStorage, licensePolicy, log)

	productService := catalogapp.NewProductService(productRepo, reviewRepo, userRepo, orderRepo, log)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo, orderRepo, log)
	reviewService.SetMetrics(marketMetrics)
	priceService := catalogapp.NewPriceService(productRepo, priceHistoryRepo)

	cartService := tradeapp.NewCartService(orderRepo, productRepo, log)
	cartService.SetMetrics(marketMetrics)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, log)
	orderService.SetMetrics(marketMetrics)
	paymentService := tradeapp.NewPaymentService(orderRepo, productRepo, kakaoPay, cfg.App.PublicBaseURL, log)
	paymentService.SetMetrics(marketMetrics)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Product created or repriced -> price history point
	priceHistoryHandler := catalogapp.NewPriceHistoryHandler(priceHistoryRepo, log)
	eventBus.Subscribe(priceHistoryHandler)

	// Order finalized or paid -> ranking cache eviction
	rankingInvalidationHandler := tradeapp.NewRankingInvalidationHandler(rankingService, log)
	eventBus.Subscribe(rankingInvalidationHandler)

	log.Info("Event handlers registered",
		zap.Strings("price_history_events", priceHistoryHandler.EventTypes()),
		zap.Strings("ranking_invalidation_events", rankingInvalidationHandler.EventTypes()),
	)

	// Every domain event is mirrored to Kafka when enabled
	if cfg.Kafka.Enabled {
		kafkaPublisher := event.NewKafkaPublisher(cfg.Kafka, log)
		eventBus.Subscribe(kafkaPublisher)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.Error("Error closing Kafka publisher", zap.Error(err))
			}
		}()
		log.Info("Kafka event export enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	authService.SetEventPublisher(eventBus)
	sellerService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	cartService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	handlers := handler.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Seller:  handler.NewSellerHandler(sellerService, licensePolicy.MaxSize),
		Product: handler.NewProductHandler(productService, priceService),
		Review:  handler.NewReviewHandler(reviewService),
		Cart:    handler.NewCartHandler(cartService, orderService),
		Payment: handler.NewPaymentHandler(paymentService),
		Ranking: handler.NewRankingHandler(rankingService),
	}
	healthHandler := handler.NewHealthHandler(db)

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Server span per request, error status on 4xx/5xx
	// 5. Metrics - Request count, latency and size
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     providers.TracingEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(providers.Meter("greenauction/http")))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Tokens are optional at this level; each group decides what it requires
	r.Use(middleware.Authenticate(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	}))
	r.Use(middleware.TracingAttributeInjector())

	// Rate limiting (if enabled) keys on the authenticated user when present
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		r.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	handler.RegisterRoutes(r, handlers).Setup()
	engine.GET("/api/v1/health", healthHandler.Health)

	for _, route := range r.Routes() {
		log.Debug("Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// newLicenseStorage returns S3-compatible storage when configured and an
// in-process store otherwise. Production refuses to start without S3.
func newLicenseStorage(cfg *config.Config, log *zap.Logger) identityapp.LicenseStorage {
	if !cfg.Storage.Enabled {
		if cfg.App.IsProduction() {
			log.Fatal("Object storage must be enabled in production")
		}
		log.Warn("Object storage disabled, business licenses are kept in memory")
		return storage.NewMemoryObjectStorage()
	}

	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create object storage", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		log.Fatal("Failed to prepare license bucket", zap.Error(err), zap.String("bucket", s3Storage.GetBucket()))
	}

	log.Info("Object storage ready", zap.String("bucket", s3Storage.GetBucket()))
	return s3Storage
}

func newRankingCache(cfg config.RankingConfig, client *redis.Client) cache.RankingCache {
	if !cfg.CacheEnabled {
		return cache.NoopRankingCache{}
	}
	if client != nil {
		return cache.NewRedisRankingCache(client, cfg.CacheTTL)
	}
	return cache.NewInMemoryRankingCache(cfg.CacheTTL)
}

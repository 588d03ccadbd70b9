package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/vastravibe/backend/internal/application/catalog"
	dashboardapp "github.com/vastravibe/backend/internal/application/dashboard"
	identityapp "github.com/vastravibe/backend/internal/application/identity"
	orderapp "github.com/vastravibe/backend/internal/application/order"
	paymentapp "github.com/vastravibe/backend/internal/application/payment"
	"github.com/vastravibe/backend/internal/infrastructure/auth"
	"github.com/vastravibe/backend/internal/infrastructure/cache"
	"github.com/vastravibe/backend/internal/infrastructure/config"
	"github.com/vastravibe/backend/internal/infrastructure/logger"
	"github.com/vastravibe/backend/internal/infrastructure/persistence"
	"github.com/vastravibe/backend/internal/interfaces/http/handler"
	"github.com/vastravibe/backend/internal/interfaces/http/middleware"
	"github.com/vastravibe/backend/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting VastraVibe backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Dashboard cache store: Redis when reachable, in-process fallback otherwise
	var cacheStore cache.Store
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
			cacheStore = cache.NewMemoryStore()
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Error closing Redis client", zap.Error(err))
				}
			}()
			cacheStore = cache.NewRedisStore(redisClient)
			log.Info("Redis cache connected", zap.String("addr", cfg.Redis.RedisAddr()))
		}
	}

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	adminUserRepo := persistence.NewGormAdminUserRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)

	// Initialize application services
	orderService := orderapp.NewService(orderRepo, paymentRepo, productRepo, customerRepo)
	paymentService := paymentapp.NewService(paymentRepo, orderRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)

	var dashboardOpts []dashboardapp.Option
	if cacheStore != nil {
		dashboardOpts = append(dashboardOpts, dashboardapp.WithCache(
			cacheStore, cfg.Cache.StatsTTL, cfg.Cache.ChartTTL, cfg.Cache.KeyNamespace,
		))
	}
	dashboardService := dashboardapp.NewService(dashboardRepo, log, dashboardOpts...)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(adminUserRepo, jwtService)

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(db, version)
	authHandler := handler.NewAuthHandler(authService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	orderHandler := handler.NewOrderHandler(orderService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and access logs carry it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.JWTAuthWithConfig(middleware.JWTConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
		},
		Logger: log,
	}))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(authHandler).
		Register(dashboardHandler).
		Register(productHandler).
		Register(categoryHandler).
		Register(orderHandler).
		Register(paymentHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

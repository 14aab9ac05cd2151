package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/auth"
	"github.com/insightpulse/service-analytics/internal/config"
	"github.com/insightpulse/service-analytics/internal/events"
	"github.com/insightpulse/service-analytics/internal/export"
	"github.com/insightpulse/service-analytics/internal/forecast"
	"github.com/insightpulse/service-analytics/internal/handlers"
	"github.com/insightpulse/service-analytics/internal/logger"
	"github.com/insightpulse/service-analytics/internal/middleware"
	"github.com/insightpulse/service-analytics/internal/routes"
	"github.com/insightpulse/service-analytics/internal/services"
	"github.com/insightpulse/service-analytics/internal/store"
)

func main() {
	// Load .env file in development
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	zlog, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Load the metrics tables. A missing or malformed file is not fatal to the
	// process: data-dependent endpoints respond with "Data not loaded" until the
	// service restarts with valid inputs.
	metricsStore := store.New(zlog)
	if err := metricsStore.LoadDailyCSV(cfg.Data.DailyPath); err != nil {
		zlog.Error("Failed to load daily metrics", zap.String("path", cfg.Data.DailyPath), zap.Error(err))
	}
	if err := metricsStore.LoadWeeklyCSV(cfg.Data.WeeklyPath); err != nil {
		zlog.Error("Failed to load weekly metrics", zap.String("path", cfg.Data.WeeklyPath), zap.Error(err))
	}

	// Initialize auth
	users, err := auth.NewUserStore(cfg.Auth.AdminPassword, cfg.Auth.DemoPassword)
	if err != nil {
		zlog.Fatal("Failed to initialize user store", zap.Error(err))
	}
	jwtManager := auth.NewJWTManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.TTLHours)*time.Hour,
		users,
	)

	// Connect to Redis (optional - forecast caching only)
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			zlog.Warn("Failed to connect to Redis, forecast caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			zlog.Info("Connected to Redis", zap.String("host", cfg.Redis.Host))
		}
	}

	// Connect to NATS (optional - only if configured)
	var publisher *events.Publisher
	if cfg.NATS.URL != "" {
		natsConn, err := nats.Connect(cfg.NATS.URL)
		if err != nil {
			zlog.Warn("Failed to connect to NATS, event publishing disabled", zap.Error(err))
		} else {
			zlog.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))
			publisher = events.NewPublisher(natsConn, zlog)
			defer natsConn.Close()
		}
	}

	if publisher != nil {
		daily, _ := metricsStore.Daily()
		weekly, _ := metricsStore.Weekly()
		_ = publisher.PublishDataLoaded(&events.DataLoadedEvent{
			EventID:    uuid.New(),
			DailyRows:  len(daily),
			WeeklyRows: len(weekly),
			Timestamp:  time.Now().UTC(),
		})
	}

	// Initialize services
	forecastService := forecast.NewService(metricsStore, forecast.NewHoltWinters(), zlog)
	forecastCache := services.NewForecastCacheService(
		redisClient,
		time.Duration(cfg.Redis.CacheTTLMinutes)*time.Minute,
		zlog,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, jwtManager, zlog)
	metricsHandler := handlers.NewMetricsHandler(metricsStore, zlog)
	forecastHandler := handlers.NewForecastHandler(metricsStore, forecastService, forecastCache, publisher, zlog)
	exportHandler := handlers.NewExportHandler(metricsStore, forecastService, export.NewPDFGenerator(), publisher, zlog)

	// The auth capability is fixed here, once. Handlers never branch on it.
	authMiddleware := middleware.AllowAll()
	if cfg.Auth.Enabled {
		authMiddleware = middleware.RequireAuth(jwtManager)
	} else {
		zlog.Warn("Authentication disabled, all endpoints are open")
	}

	// Set Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zlog))
	router.Use(middleware.CORSWithOrigins(cfg.CORS.AllowedOrigins))

	routes.SetupRoutes(router, &routes.RouteConfig{
		AuthHandler:     authHandler,
		MetricsHandler:  metricsHandler,
		ForecastHandler: forecastHandler,
		ExportHandler:   exportHandler,
		AuthMiddleware:  authMiddleware,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // forecast and PDF rendering are CPU-bound
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zlog.Info("Analytics service starting on port " + cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}

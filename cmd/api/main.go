package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/snaplink/snaplink/internal/config"
	"github.com/snaplink/snaplink/internal/handler"
	"github.com/snaplink/snaplink/internal/logger"
	"github.com/snaplink/snaplink/internal/middleware"
	"github.com/snaplink/snaplink/internal/migrations"
	"github.com/snaplink/snaplink/internal/repository/postgres"
	redisrepo "github.com/snaplink/snaplink/internal/repository/redis"
	"github.com/snaplink/snaplink/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	loggerConfig := logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}

	if err := logger.Initialize(loggerConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	log := logger.Get()
	log.Info("Starting snaplink service",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	if err := migrations.Up(cfg.Database.URL, log); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := setupDatabase(cfg)
	if err != nil {
		log.Error("Failed to setup database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient, err := setupRedis(cfg)
	if err != nil {
		log.Error("Failed to setup redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	urlRepo := postgres.NewURLRepository(dbPool)
	statsRepo := postgres.NewStatsRepository(dbPool)
	urlCache := redisrepo.NewURLCache(redisClient, cfg.Cache.TTL)

	shortenerService := service.NewShortenerService(urlRepo, urlCache, statsRepo, cfg.Shortener.CodeLength)

	shortenerHandler := handler.NewShortenerHandler(shortenerService)
	analyticsHandler := handler.NewAnalyticsHandler(shortenerService)
	healthHandler := handler.NewHealthHandler(dbPool, redisClient)

	router := setupRouter(cfg, shortenerHandler, analyticsHandler, healthHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	gracefulShutdown(srv, cfg.Server.ShutdownTimeout, dbPool, redisClient, log)
}

func setupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	if err := dbPool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return dbPool, nil
}

func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisClient, nil
}

func setupRouter(
	cfg *config.Config,
	shortenerHandler *handler.ShortenerHandler,
	analyticsHandler *handler.AnalyticsHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	auth := middleware.Auth([]byte(cfg.Auth.JWTSecret))

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)

	urls := router.Group("/api/v1/urls")
	{
		urls.GET("/info/:shortCode", shortenerHandler.Info)

		urls.POST("", auth, shortenerHandler.Create)
		urls.GET("", auth, shortenerHandler.List)
		urls.GET("/analytics/global", auth, analyticsHandler.GlobalAnalytics)
		urls.GET("/:shortCode/analytics", auth, analyticsHandler.URLAnalytics)
		urls.PUT("/:shortCode", auth, shortenerHandler.Update)
		urls.DELETE("/:shortCode", auth, shortenerHandler.Delete)
	}

	// Redirect route goes last so static routes keep priority.
	router.GET("/:codeOrAlias", shortenerHandler.Redirect)

	return router
}

func gracefulShutdown(srv *http.Server, timeout time.Duration, dbPool *pgxpool.Pool, redisClient *redis.Client, log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", "error", err)
	}

	dbPool.Close()
	log.Info("Database connection closed")

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis", "error", err)
	}

	log.Info("Graceful shutdown completed")
}

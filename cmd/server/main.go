package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsAdapter "github.com/bazarly/ads-service/internal/adapter/messaging/nats"
	cacheAdapter "github.com/bazarly/ads-service/internal/adapter/repository/cache"
	mongoRepo "github.com/bazarly/ads-service/internal/adapter/repository/mongodb"
	"github.com/bazarly/ads-service/internal/adapter/storage/s3"

	"github.com/bazarly/ads-service/internal/ads/usecase"
	"github.com/bazarly/ads-service/internal/config"
	"github.com/bazarly/ads-service/internal/mailer"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/bazarly/ads-service/internal/platform/metrics"
	"github.com/bazarly/ads-service/internal/platform/tracer"
	"github.com/bazarly/ads-service/internal/port/httpapi"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const serviceName = "ads-service"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	// 1. Logger
	appLogger := logger.NewLogger()
	appLogger.Info("Application starting...", zap.String("service_name", serviceName))

	// 2. Configuration
	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Tracer
	tp := tracer.InitTracer(serviceName, cfg.OTLPEndpoint, appLogger)
	defer func() {
		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := tp.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	// 4. MongoDB
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	ctxPing, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := mongoClient.Ping(ctxPing, nil); err != nil {
		appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	appLogger.Info("Successfully connected and pinged MongoDB.")
	db := mongoClient.Database(cfg.MongoDatabase)

	// 5. Listing cache. A dead Redis is not fatal: the service runs with
	// the cache disabled and every read goes to MongoDB.
	cacheEnabled := cfg.CacheEnabled
	var listingCache *cacheAdapter.ListingCache
	if cacheEnabled {
		redisClient, err := cacheAdapter.NewRedisClient(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing with listing cache disabled", zap.Error(err))
			cacheEnabled = false
		} else {
			defer redisClient.Close()
			listingCache = cacheAdapter.NewListingCache(redisClient, true, appLogger)
		}
	}
	if listingCache == nil {
		listingCache = cacheAdapter.NewListingCache(nil, false, appLogger)
	}
	appLogger.Info("Listing cache configured", zap.Bool("enabled", cacheEnabled))

	// 6. Media storage
	mediaStorage, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize media storage", zap.Error(err))
	}

	// 7. Event publisher
	natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, serviceName)
	if err != nil {
		appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
	}
	defer natsPublisher.Close()

	// 8. Metrics
	metricsManager := metrics.NewMetricsManager("ads_service")
	go func() {
		if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	// 9. Repositories
	adRepo, err := mongoRepo.NewAdRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AdRepository", zap.Error(err))
	}
	favoriteRepo, err := mongoRepo.NewFavoriteRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize FavoriteRepository", zap.Error(err))
	}
	sellerRepo := mongoRepo.NewSellerRepository(db, appLogger)

	// 10. Mailer (optional)
	var featuredMailer usecase.Mailer
	if cfg.SMTPEmail != "" {
		featuredMailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
		appLogger.Info("SMTP mailer configured", zap.String("host", cfg.SMTPHost))
	} else {
		appLogger.Info("SMTP mailer not configured (SMTP_EMAIL not set).")
	}

	// 11. Usecases
	listingService := usecase.NewListingService(adRepo, listingCache, appLogger, metricsManager)
	adUsecase := usecase.NewAdUsecase(adRepo, sellerRepo, favoriteRepo, natsPublisher, appLogger, metricsManager)
	featuringEngine := usecase.NewFeaturingEngine(adRepo, sellerRepo, natsPublisher, featuredMailer, appLogger, metricsManager)
	favoriteUsecase := usecase.NewFavoriteUsecase(favoriteRepo, natsPublisher, appLogger)
	mediaUsecase := usecase.NewMediaUsecase(mediaStorage, adRepo, appLogger)

	// 12. HTTP server
	handler := httpapi.NewHandler(listingService, adUsecase, featuringEngine, favoriteUsecase, mediaUsecase, appLogger)
	router := httpapi.NewRouter(handler, cfg.JWTSecret, metricsManager)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// 13. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"sneaker-storefront/cart"
	"sneaker-storefront/catalog"
	"sneaker-storefront/checkout"
	"sneaker-storefront/config"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/kafka"
	"sneaker-storefront/logger"
	"sneaker-storefront/middleware"
	"sneaker-storefront/newsletter"
	awspkg "sneaker-storefront/pkg/aws"
	"sneaker-storefront/routes"
)

func main() {
	cfg := config.Load()
	log := logger.Initialize(cfg.Env)
	defer log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// --- 1. Storage ---
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}

	// --- 2. AWS (optional) ---
	var awsCfg sdkaws.Config
	awsReady := false
	if cfg.CloudWatchEnabled || cfg.EventPublisher == config.PublisherSNS {
		awsCfg, err = awspkg.LoadAWSConfig(ctx)
		if err != nil {
			log.Warn("AWS config unavailable, CloudWatch and SNS disabled", zap.Error(err))
		} else {
			awsReady = true
		}
	}
	metrics := awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled && awsReady)

	publisher, closePublisher := newPublisher(cfg, awsCfg, awsReady, log)

	// --- 3. Services ---
	cat := catalog.Default()
	pricing := cart.Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		PromoCode:             cfg.PromoCode,
		PromoPercent:          cfg.PromoPercent,
	}
	checkoutSvc := checkout.NewService(cat, pricing, publisher, metrics, log)
	news := newsletter.NewService(store, cfg.NewsletterDelay, metrics, log)

	// --- 4. HTTP Server & Middleware ---
	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 100
	}
	limiter := middleware.NewRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), int(cfg.RateLimitBurst), 5*time.Minute)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.Metrics(metrics, "storefront"))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(r, routes.Dependencies{
		Store:          store,
		Catalog:        cat,
		Pricing:        pricing,
		Checkout:       checkoutSvc,
		Newsletter:     news,
		Log:            log,
		RequestTimeout: cfg.RequestTimeout,
	})

	// --- 5. Graceful Shutdown ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Storefront starting",
			zap.String("port", cfg.Port),
			zap.String("store", cfg.StoreBackend),
			zap.String("publisher", cfg.EventPublisher))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	news.Close()
	limiter.Stop()
	if err := closePublisher(); err != nil {
		log.Warn("Failed to close event publisher", zap.Error(err))
	}
	if err := closeStore(); err != nil {
		log.Warn("Failed to close store", zap.Error(err))
	}
	log.Info("Server exited")
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (database.Store, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		return database.NewRedisStore(client, cfg.CartTTL), client.Close, nil
	case config.BackendPostgres:
		db, err := database.Connect(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		store, err := database.NewPostgresStore(db)
		if err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		log.Info("Connected to Postgres store")
		return store, func() error { return database.Close(db) }, nil
	default:
		if cfg.StoreBackend != config.BackendMemory {
			log.Warn("Unknown store backend, using memory", zap.String("backend", cfg.StoreBackend))
		}
		return database.NewMemoryStore(), func() error { return nil }, nil
	}
}

func newPublisher(cfg config.Config, awsCfg sdkaws.Config, awsReady bool, log *zap.Logger) (checkout.EventPublisher, func() error) {
	noop := func() error { return nil }
	switch cfg.EventPublisher {
	case config.PublisherKafka:
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		return producer, producer.Close
	case config.PublisherSNS:
		if awsReady && cfg.OrderSNSTopicARN != "" {
			return checkout.NewSNSPublisher(awspkg.NewSNSClient(awsCfg), cfg.OrderSNSTopicARN), noop
		}
		log.Warn("SNS publisher not configured, logging order events instead")
	}
	return checkout.LogPublisher{Log: log}, noop
}

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
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	apperrors "github.com/yashrajoria/storefront-service/common/errors"
	"github.com/yashrajoria/storefront-service/common/logger"
	"github.com/yashrajoria/storefront-service/common/middleware"
	"github.com/yashrajoria/storefront-service/common/telemetry"
	"github.com/yashrajoria/storefront-service/controllers"
	"github.com/yashrajoria/storefront-service/database"
	"github.com/yashrajoria/storefront-service/kafka"
	awspkg "github.com/yashrajoria/storefront-service/pkg/aws"
	"github.com/yashrajoria/storefront-service/repository"
	"github.com/yashrajoria/storefront-service/routes"
	"github.com/yashrajoria/storefront-service/services"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const serviceName = "storefront-service"

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	zapLogger := logger.Initialize(os.Getenv("APP_ENV"), nil)
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()

	// --- 1. AWS and configuration ---

	awsCfg, awsErr := awspkg.LoadAWSConfig(ctx)
	if awsErr != nil {
		zap.L().Warn("AWS config unavailable, AWS integrations disabled", zap.Error(awsErr))
	}

	var secrets secretGetter
	if awsErr == nil && os.Getenv("AWS_USE_SECRETS") == "true" {
		secrets = awspkg.NewSecretsClient(awsCfg)
	}
	cfg, err := LoadConfig(ctx, secrets)
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.CloudWatchEnabled && awsErr == nil {
		cwLogs, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, serviceName, cfg.CloudWatchLogGroup)
		if err != nil {
			zap.L().Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(err))
		} else {
			zapLogger = logger.Initialize(cfg.AppEnv, cwLogs)
		}
	}

	var metrics *awspkg.MetricsClient
	if awsErr == nil {
		metrics = awspkg.NewMetricsClient(awsCfg, cfg.MetricsNamespace, cfg.CloudWatchEnabled)
	}

	if cfg.OtelEnabled {
		tp, err := telemetry.InitTracer(ctx, serviceName, cfg.OtelEndpoint)
		if err != nil {
			zap.L().Warn("Tracing disabled", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tp.Shutdown(shutdownCtx)
			}()
		}
	}

	// --- 2. Stores ---

	store, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoConnectTimeout)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}()

	productRepo := repository.NewProductRepository(store.DB)
	orderRepo := repository.NewOrderRepository(store.DB)
	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		zap.L().Warn("Failed to ensure order indexes", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zap.L().Warn("Redis unavailable, product list caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// --- 3. Event publishers ---

	var publishers services.MultiPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.OrderEventsTopic)
		defer producer.Close()
		publishers = append(publishers, producer)
	}
	if cfg.OrderEventsSNSArn != "" && awsErr == nil {
		publishers = append(publishers, services.NewTopicEventPublisher(awspkg.NewSNSClient(awsCfg), cfg.OrderEventsSNSArn))
	}
	if cfg.OrderEventsSQSURL != "" && awsErr == nil {
		publishers = append(publishers, services.NewTopicEventPublisher(awspkg.NewSQSPublisher(awsCfg), cfg.OrderEventsSQSURL))
	}
	var publisher services.EventPublisher
	if len(publishers) > 0 {
		publisher = publishers
	}

	// --- 4. Dependency injection ---

	productService := services.NewProductService(productRepo, metrics)
	orderService := services.NewOrderService(orderRepo, productRepo, publisher, metrics)

	var cache *controllers.CacheManager
	if redisClient != nil {
		cache = controllers.NewCacheManager(redisClient, cfg.ProductCacheTTL, metrics)
	}
	productController := controllers.NewProductController(productService, cache)
	orderController := controllers.NewOrderController(orderService)
	healthController := controllers.NewHealthController(store)

	// --- 5. HTTP server & middleware ---

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	stop := make(chan struct{})
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(zapLogger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, stop))
	r.Use(middleware.Timeout(controllers.DefaultContextTimeout))
	r.Use(middleware.MetricsMiddleware(metrics, serviceName))
	if cfg.OtelEnabled {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterProductRoutes(r, productController)
	routes.RegisterOrderRoutes(r, orderController)
	routes.RegisterHealthRoutes(r, healthController)

	// --- 6. Graceful shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Storefront service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")
	close(stop)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("Server exiting")
}

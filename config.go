package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const mongoURISecret = "storefront/MONGO_URI"

type Config struct {
	Port                string
	AppEnv              string
	MongoURI            string
	MongoDB             string
	MongoConnectTimeout time.Duration
	RedisURL            string
	ProductCacheTTL     time.Duration
	KafkaBrokers        []string
	OrderEventsTopic    string
	OrderEventsSNSArn   string
	OrderEventsSQSURL   string
	CloudWatchEnabled   bool
	CloudWatchLogGroup  string
	MetricsNamespace    string
	OtelEnabled         bool
	OtelEndpoint        string
	AllowedOrigins      []string
	RateLimitPerMinute  int
	UseAWSSecrets       bool
}

// secretGetter is satisfied by *aws.SecretsClient.
type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// LoadConfig reads configuration from the environment. When secrets is
// non-nil and AWS_USE_SECRETS=true, MONGO_URI is taken from Secrets Manager
// if present there.
func LoadConfig(ctx context.Context, secrets secretGetter) (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8000"),
		AppEnv:             getEnv("APP_ENV", "development"),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDB:            getEnv("MONGO_DB", "hrone"),
		RedisURL:           os.Getenv("REDIS_URL"),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic:   getEnv("ORDER_EVENTS_TOPIC", "order.created"),
		OrderEventsSNSArn:  os.Getenv("ORDER_EVENTS_SNS_TOPIC_ARN"),
		OrderEventsSQSURL:  os.Getenv("ORDER_EVENTS_SQS_QUEUE_URL"),
		CloudWatchEnabled:  os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchLogGroup: getEnv("CLOUDWATCH_LOG_GROUP", "/storefront/services"),
		MetricsNamespace:   getEnv("METRICS_NAMESPACE", "Storefront"),
		OtelEnabled:        os.Getenv("OTEL_ENABLED") == "true",
		OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		AllowedOrigins:     splitList(os.Getenv("ALLOWED_ORIGINS")),
		UseAWSSecrets:      os.Getenv("AWS_USE_SECRETS") == "true",
	}

	var err error
	if cfg.MongoConnectTimeout, err = time.ParseDuration(getEnv("MONGO_CONNECT_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("invalid MONGO_CONNECT_TIMEOUT: %w", err)
	}
	if cfg.ProductCacheTTL, err = time.ParseDuration(getEnv("PRODUCT_CACHE_TTL", "10m")); err != nil {
		return nil, fmt.Errorf("invalid PRODUCT_CACHE_TTL: %w", err)
	}
	if cfg.RateLimitPerMinute, err = strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	if cfg.UseAWSSecrets && secrets != nil {
		if uri, err := secrets.GetSecret(ctx, mongoURISecret); err == nil && uri != "" {
			cfg.MongoURI = uri
		}
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

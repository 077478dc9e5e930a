package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	awspkg "github.com/yashrajoria/storefront-service/pkg/aws"
)

// MetricsRecorder is the subset of the CloudWatch client the middleware needs.
type MetricsRecorder interface {
	IsEnabled() bool
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error
}

// MetricsMiddleware records request count, latency and error counts per route.
// Publishing happens off the request path.
func MetricsMiddleware(recorder MetricsRecorder, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if recorder == nil || !recorder.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)
		statusCode := c.Writer.Status()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  c.Request.Method,
			"Path":    path,
			"Status":  statusCodeToRange(statusCode),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = recorder.RecordCount(ctx, awspkg.MetricHTTPRequests, dimensions)
			_ = recorder.RecordLatency(ctx, awspkg.MetricHTTPLatency, duration, dimensions)

			switch {
			case statusCode >= 500:
				_ = recorder.RecordCount(ctx, awspkg.MetricHTTPErrors, dimensions)
				_ = recorder.RecordCount(ctx, awspkg.MetricHTTP5xx, dimensions)
			case statusCode >= 400:
				_ = recorder.RecordCount(ctx, awspkg.MetricHTTPErrors, dimensions)
				_ = recorder.RecordCount(ctx, awspkg.MetricHTTP4xx, dimensions)
			}
		}()
	}
}

// statusCodeToRange converts status code to a range string (2xx, 3xx, 4xx, 5xx)
func statusCodeToRange(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

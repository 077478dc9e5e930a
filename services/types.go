package services

import (
	"context"
	"time"

	"github.com/yashrajoria/storefront-service/common/logger"
	"go.uber.org/zap"
)

// MetricsRecorder is satisfied by *aws.MetricsClient. A nil recorder, or one
// that reports disabled, records nothing.
type MetricsRecorder interface {
	IsEnabled() bool
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

const backgroundTimeout = 5 * time.Second

// recordCount publishes a count metric off the request path.
func recordCount(ctx context.Context, recorder MetricsRecorder, name string, dims map[string]string) {
	if recorder == nil || !recorder.IsEnabled() {
		return
	}
	requestID := logger.GetRequestID(ctx)
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()
		if err := recorder.RecordCount(bgCtx, name, dims); err != nil {
			zap.L().Warn("Failed to record metric",
				zap.String("metric", name),
				zap.String(logger.RequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()
}

package logger

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// RequestIDHeader is read from incoming requests and echoed on responses.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// Initialize builds the process logger for env and installs it as the zap
// global. When sink is non-nil every entry is also written to it as JSON.
func Initialize(env string, sink io.Writer) *zap.Logger {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var log *zap.Logger
	if sink != nil {
		level := zap.NewAtomicLevelAt(config.Level.Level())
		consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(config.EncoderConfig), zapcore.AddSync(os.Stdout), level)

		jsonConfig := config.EncoderConfig
		jsonConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		sinkCore := zapcore.NewCore(zapcore.NewJSONEncoder(jsonConfig), zapcore.AddSync(sink), level)

		log = zap.New(zapcore.NewTee(consoleCore, sinkCore), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	} else {
		var err error
		log, err = config.Build()
		if err != nil {
			fmt.Printf("Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
	}

	zap.ReplaceGlobals(log)
	return log
}

// RequestID assigns every request an id, taken from X-Request-ID when the
// caller supplies one. The id is stored on both the gin and request contexts.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), requestID))
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Error logs an error with request ID and additional context
func Error(ctx context.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String(RequestIDKey, GetRequestID(ctx)))
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	zap.L().Error(msg, fields...)
}

// Info logs an info message with request ID and additional context
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String(RequestIDKey, GetRequestID(ctx)))
	zap.L().Info(msg, fields...)
}

// Warn logs a warning message with request ID and additional context
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String(RequestIDKey, GetRequestID(ctx)))
	zap.L().Warn(msg, fields...)
}

// GetRequestID extracts the request ID from a gin or request context.
func GetRequestID(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		if requestID := ginCtx.GetString(RequestIDKey); requestID != "" {
			return requestID
		}
		ctx = ginCtx.Request.Context()
	}
	if requestID, ok := ctx.Value(ctxKey{}).(string); ok && requestID != "" {
		return requestID
	}
	return "unknown"
}

// WithContext creates a new context with the given request ID
func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

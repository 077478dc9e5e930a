package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metric names published by the service.
const (
	MetricHTTPRequests = "HTTPRequests"
	MetricHTTPErrors   = "HTTPErrors"
	MetricHTTPLatency  = "HTTPLatency"
	MetricHTTP4xx      = "HTTP4xxErrors"
	MetricHTTP5xx      = "HTTP5xxErrors"

	MetricProductsCreated   = "ProductsCreated"
	MetricOrdersCreated     = "OrdersCreated"
	MetricOrderEventsFailed = "OrderEventsFailed"
	MetricCacheHits         = "CacheHits"
	MetricCacheMisses       = "CacheMisses"
)

type metricPutter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsClient wraps CloudWatch PutMetricData. A disabled client accepts
// every call and sends nothing.
type MetricsClient struct {
	client    metricPutter
	namespace string
	enabled   bool
}

// NewMetricsClient creates a CloudWatch metrics client for namespace.
func NewMetricsClient(cfg sdkaws.Config, namespace string, enabled bool) *MetricsClient {
	if namespace == "" {
		namespace = "Storefront"
	}
	return &MetricsClient{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
		enabled:   enabled,
	}
}

// PutMetric sends a single metric data point to CloudWatch
func (m *MetricsClient) PutMetric(ctx context.Context, metricName string, value float64, unit types.StandardUnit, dimensions map[string]string) error {
	if !m.IsEnabled() {
		return nil
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: sdkaws.String(metricName),
				Value:      sdkaws.Float64(value),
				Unit:       unit,
				Timestamp:  sdkaws.Time(time.Now()),
				Dimensions: toDimensions(dimensions),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put metric %s: %w", metricName, err)
	}
	return nil
}

// RecordCount increments a counter metric
func (m *MetricsClient) RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error {
	return m.PutMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions)
}

// RecordLatency records a duration in milliseconds
func (m *MetricsClient) RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error {
	return m.PutMetric(ctx, metricName, float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
}

// IsEnabled returns whether CloudWatch metrics are enabled
func (m *MetricsClient) IsEnabled() bool {
	return m != nil && m.enabled
}

// toDimensions sorts by name so identical maps produce identical requests.
func toDimensions(dimensions map[string]string) []types.Dimension {
	names := make([]string, 0, len(dimensions))
	for k := range dimensions {
		names = append(names, k)
	}
	sort.Strings(names)

	dims := make([]types.Dimension, 0, len(names))
	for _, k := range names {
		dims = append(dims, types.Dimension{
			Name:  sdkaws.String(k),
			Value: sdkaws.String(dimensions[k]),
		})
	}
	return dims
}

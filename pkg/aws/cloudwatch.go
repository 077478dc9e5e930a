package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// CloudWatchLogsClient ships log lines to a CloudWatch Logs stream. It
// implements io.Writer so it can be tee'd behind zap.
type CloudWatchLogsClient struct {
	client        *cloudwatchlogs.Client
	logGroupName  string
	logStreamName string
	mu            sync.Mutex
}

// NewCloudWatchLogsClient ensures logGroup exists and opens a fresh stream
// named after serviceName.
func NewCloudWatchLogsClient(ctx context.Context, cfg sdkaws.Config, serviceName, logGroup string) (*CloudWatchLogsClient, error) {
	if logGroup == "" {
		logGroup = "/storefront/services"
	}
	c := &CloudWatchLogsClient{
		client:        cloudwatchlogs.NewFromConfig(cfg),
		logGroupName:  logGroup,
		logStreamName: fmt.Sprintf("%s-%d", serviceName, time.Now().Unix()),
	}

	if err := c.ensureLogGroup(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure log group: %w", err)
	}
	if _, err := c.client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  sdkaws.String(c.logGroupName),
		LogStreamName: sdkaws.String(c.logStreamName),
	}); err != nil {
		return nil, fmt.Errorf("failed to create log stream: %w", err)
	}
	return c, nil
}

func (c *CloudWatchLogsClient) ensureLogGroup(ctx context.Context) error {
	_, err := c.client.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: sdkaws.String(c.logGroupName),
	})
	var exists *types.ResourceAlreadyExistsException
	if err != nil && !errors.As(err, &exists) {
		return err
	}

	_, err = c.client.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
		LogGroupName:    sdkaws.String(c.logGroupName),
		RetentionInDays: sdkaws.Int32(30),
	})
	if err != nil {
		return fmt.Errorf("failed to set retention policy: %w", err)
	}
	return nil
}

// Write sends p as one log event. Delivery errors go to stderr and never fail
// the caller.
func (c *CloudWatchLogsClient) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  sdkaws.String(c.logGroupName),
		LogStreamName: sdkaws.String(c.logStreamName),
		LogEvents: []types.InputLogEvent{{
			Message:   sdkaws.String(string(p)),
			Timestamp: sdkaws.Int64(time.Now().UnixMilli()),
		}},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "CloudWatch write error: %v\n", err)
	}
	return len(p), nil
}

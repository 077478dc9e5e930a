package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient fans order events out through an SNS topic.
type SNSClient struct {
	api snsAPI
}

func NewSNSClient(cfg sdkaws.Config) *SNSClient {
	return &SNSClient{api: sns.NewFromConfig(cfg)}
}

// Publish sends message to topicArn. attributes become String message
// attributes so subscribers can filter on them.
func (s *SNSClient) Publish(ctx context.Context, topicArn string, message []byte, attributes map[string]string) error {
	if topicArn == "" {
		return fmt.Errorf("sns: empty topic arn")
	}

	in := &sns.PublishInput{
		TopicArn: sdkaws.String(topicArn),
		Message:  sdkaws.String(string(message)),
	}
	if len(attributes) > 0 {
		in.MessageAttributes = make(map[string]snstypes.MessageAttributeValue, len(attributes))
		for k, v := range attributes {
			in.MessageAttributes[k] = snstypes.MessageAttributeValue{
				DataType:    sdkaws.String("String"),
				StringValue: sdkaws.String(v),
			}
		}
	}

	if _, err := s.api.Publish(ctx, in); err != nil {
		return fmt.Errorf("sns publish to %s: %w", topicArn, err)
	}
	return nil
}

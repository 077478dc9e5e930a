package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type sqsAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher delivers order events straight to a queue.
type SQSPublisher struct {
	api sqsAPI
}

func NewSQSPublisher(cfg sdkaws.Config) *SQSPublisher {
	return &SQSPublisher{api: sqs.NewFromConfig(cfg)}
}

// Publish sends message to queueURL with attributes as String message
// attributes.
func (p *SQSPublisher) Publish(ctx context.Context, queueURL string, message []byte, attributes map[string]string) error {
	if queueURL == "" {
		return fmt.Errorf("sqs: empty queue url")
	}

	in := &sqs.SendMessageInput{
		QueueUrl:    sdkaws.String(queueURL),
		MessageBody: sdkaws.String(string(message)),
	}
	if len(attributes) > 0 {
		in.MessageAttributes = make(map[string]sqstypes.MessageAttributeValue, len(attributes))
		for k, v := range attributes {
			in.MessageAttributes[k] = sqstypes.MessageAttributeValue{
				DataType:    sdkaws.String("String"),
				StringValue: sdkaws.String(v),
			}
		}
	}

	if _, err := p.api.SendMessage(ctx, in); err != nil {
		return fmt.Errorf("sqs send to %s: %w", queueURL, err)
	}
	return nil
}

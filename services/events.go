package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yashrajoria/storefront-service/models"
)

// EventPublisher delivers order lifecycle events.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt models.OrderCreatedEvent) error
}

// MultiPublisher fans an event out to every publisher and joins their errors.
type MultiPublisher []EventPublisher

func (m MultiPublisher) PublishOrderCreated(ctx context.Context, evt models.OrderCreatedEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.PublishOrderCreated(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TopicPublisher is satisfied by the SNS and SQS clients in pkg/aws.
type TopicPublisher interface {
	Publish(ctx context.Context, target string, message []byte, attributes map[string]string) error
}

type topicEventPublisher struct {
	client TopicPublisher
	target string
}

// NewTopicEventPublisher publishes events as JSON to target (an SNS topic ARN
// or an SQS queue URL).
func NewTopicEventPublisher(client TopicPublisher, target string) EventPublisher {
	return &topicEventPublisher{client: client, target: target}
}

func (p *topicEventPublisher) PublishOrderCreated(ctx context.Context, evt models.OrderCreatedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	if err := p.client.Publish(ctx, p.target, body, map[string]string{"event": evt.Event}); err != nil {
		return fmt.Errorf("publish order event to %s: %w", p.target, err)
	}
	return nil
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yashrajoria/storefront-service/models"
	"go.uber.org/zap"
)

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	zap.L().Info("Kafka producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &Producer{writer: w, topic: topic}
}

// orderCreatedMessage keys the message by order id so events for one order
// land on one partition.
func orderCreatedMessage(evt models.OrderCreatedEvent) (kafka.Message, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal order event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(evt.Event)},
		},
	}, nil
}

func (p *Producer) PublishOrderCreated(ctx context.Context, evt models.OrderCreatedEvent) error {
	msg, err := orderCreatedMessage(evt)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}
	zap.L().Debug("Order event published", zap.String("order_id", evt.OrderID), zap.String("topic", p.topic))
	return nil
}

func (p *Producer) Close() error {
	zap.L().Info("Closing Kafka producer", zap.String("topic", p.topic))
	return p.writer.Close()
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront-service/models"
)

type mockTopic struct {
	target string
	body   []byte
	attrs  map[string]string
	err    error
}

func (m *mockTopic) Publish(_ context.Context, target string, message []byte, attributes map[string]string) error {
	m.target = target
	m.body = append([]byte(nil), message...)
	m.attrs = attributes
	return m.err
}

func sampleEvent() models.OrderCreatedEvent {
	return models.OrderCreatedEvent{
		Event:     models.EventOrderCreated,
		OrderID:   "65a000000000000000000001",
		UserID:    "user_1",
		Items:     []models.OrderCreatedItem{{ProductID: "65a000000000000000000002", Qty: 2}},
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestTopicEventPublisher(t *testing.T) {
	topic := &mockTopic{}
	pub := NewTopicEventPublisher(topic, "arn:aws:sns:eu-west-2:000000000000:order-events")

	require.NoError(t, pub.PublishOrderCreated(context.Background(), sampleEvent()))
	assert.Equal(t, "arn:aws:sns:eu-west-2:000000000000:order-events", topic.target)
	assert.Equal(t, map[string]string{"event": "order.created"}, topic.attrs)

	var out map[string]any
	require.NoError(t, json.Unmarshal(topic.body, &out))
	assert.Equal(t, "order.created", out["event"])
	assert.Equal(t, "65a000000000000000000001", out["orderId"])
	assert.Contains(t, out, "items")
}

func TestMultiPublisher_JoinsErrors(t *testing.T) {
	ok := &fakePublisher{}
	failing := NewTopicEventPublisher(&mockTopic{err: errors.New("throttled")}, "queue")
	multi := MultiPublisher{failing, ok}

	err := multi.PublishOrderCreated(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "publish order event to queue: throttled")
	assert.Equal(t, 1, ok.count())

	assert.NoError(t, MultiPublisher{ok}.PublishOrderCreated(context.Background(), sampleEvent()))
}

package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront-service/models"
)

func TestOrderCreatedMessage(t *testing.T) {
	evt := models.OrderCreatedEvent{
		Event:     models.EventOrderCreated,
		OrderID:   "65a000000000000000000001",
		UserID:    "user_1",
		Items:     []models.OrderCreatedItem{{ProductID: "65a000000000000000000002", Qty: 3}},
		Timestamp: time.Now().UTC(),
	}

	msg, err := orderCreatedMessage(evt)
	require.NoError(t, err)
	assert.Equal(t, []byte(evt.OrderID), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "order.created", string(msg.Headers[0].Value))

	var decoded models.OrderCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, evt.UserID, decoded.UserID)
	assert.Equal(t, evt.Items, decoded.Items)
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "order.created")
	defer p.Close()

	assert.Equal(t, "order.created", p.writer.Topic)
	assert.Equal(t, 10*time.Millisecond, p.writer.BatchTimeout)
}

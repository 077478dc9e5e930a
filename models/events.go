package models

import "time"

const EventOrderCreated = "order.created"

type OrderCreatedItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// OrderCreatedEvent is published after an order has been persisted.
type OrderCreatedEvent struct {
	Event     string             `json:"event"`
	OrderID   string             `json:"orderId"`
	UserID    string             `json:"userId"`
	Items     []OrderCreatedItem `json:"items"`
	Timestamp time.Time          `json:"timestamp"`
}

package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Qty       int                `json:"qty" bson:"qty"`
}

// Order is stored exactly as requested: no price snapshot.
type Order struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID string             `json:"userId" bson:"userId"`
	Items  []OrderItem        `json:"items" bson:"items"`
}

// OrderWithProducts is an order joined with the products its items reference.
// Products holds only the products that still exist.
type OrderWithProducts struct {
	ID       primitive.ObjectID `bson:"_id"`
	UserID   string             `bson:"userId"`
	Items    []OrderItem        `bson:"items"`
	Products []Product          `bson:"products"`
}

type ProductDetails struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// OrderItemView is an order line as returned to clients. ProductDetails is
// nil when the product no longer exists.
type OrderItemView struct {
	ProductDetails *ProductDetails `json:"productDetails"`
	Qty            int             `json:"qty"`
}

type OrderView struct {
	ID    string          `json:"id"`
	Items []OrderItemView `json:"items"`
	Total float64         `json:"total"`
}

// OrderPage is one page of a user's orders.
type OrderPage struct {
	Data []OrderView `json:"data"`
	Page Page        `json:"page"`
}

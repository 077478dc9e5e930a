package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a catalogue entry in the products collection.
type Product struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Price float64            `json:"price" bson:"price"`
	Sizes []string           `json:"sizes" bson:"sizes"`
}

// ProductSummary is the list representation of a product.
type ProductSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductPage is one page of ListProducts results.
type ProductPage struct {
	Data []ProductSummary `json:"data"`
	Page Page             `json:"page"`
}

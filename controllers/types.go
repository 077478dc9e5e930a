package controllers

import (
	"context"
	"time"

	"github.com/yashrajoria/storefront-service/models"
	"github.com/yashrajoria/storefront-service/services"
)

// Default configuration values
const (
	DefaultCacheTTL       = 10 * time.Minute
	DefaultContextTimeout = 30 * time.Second
)

// ProductServiceAPI defines the product operations the controller needs.
type ProductServiceAPI interface {
	CreateProduct(ctx context.Context, req services.CreateProductRequest) (string, error)
	ListProducts(ctx context.Context, params services.ListProductsParams) (*models.ProductPage, error)
}

// OrderServiceAPI defines the order operations the controller needs.
type OrderServiceAPI interface {
	CreateOrder(ctx context.Context, req services.CreateOrderRequest) (string, error)
	GetOrdersForUser(ctx context.Context, params services.GetOrdersParams) (*models.OrderPage, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

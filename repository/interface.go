package repository

import (
	"context"

	"github.com/yashrajoria/storefront-service/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepo defines the product operations used by the services.
type ProductRepo interface {
	Create(ctx context.Context, product *models.Product) (primitive.ObjectID, error)
	Find(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

// OrderRepo defines the order operations used by the services.
type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByUserWithProducts(ctx context.Context, userID string, limit, offset int) ([]models.OrderWithProducts, error)
	EnsureIndexes(ctx context.Context) error
}

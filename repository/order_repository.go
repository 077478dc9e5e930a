package repository

import (
	"context"
	"fmt"

	"github.com/yashrajoria/storefront-service/common/telemetry"
	"github.com/yashrajoria/storefront-service/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

const OrdersCollection = "orders"

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection(OrdersCollection),
	}
}

// EnsureIndexes creates the userId index used by FindByUserWithProducts.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("userId_1__id_1"),
	})
	if err != nil {
		return fmt.Errorf("create orders index: %w", err)
	}
	return nil
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert order: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert order: unexpected id type %T", result.InsertedID)
	}
	order.ID = id
	return id, nil
}

// FindByUserWithProducts pages through a user's orders and left-joins each
// order with the products its items reference.
func (r *OrderRepository) FindByUserWithProducts(ctx context.Context, userID string, limit, offset int) (orders []models.OrderWithProducts, err error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.FindByUserWithProducts",
		attribute.String("order.user_id", userID),
		attribute.Int("db.limit", limit),
		attribute.Int("db.offset", offset),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	cursor, err := r.collection.Aggregate(ctx, userOrdersPipeline(userID, limit, offset))
	if err != nil {
		return nil, fmt.Errorf("aggregate orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders = []models.OrderWithProducts{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func userOrdersPipeline(userID string, limit, offset int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$skip", Value: int64(offset)}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ProductsCollection},
			{Key: "localField", Value: "items.productId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "products"},
		}}},
	}
}

package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/yashrajoria/storefront-service/common/telemetry"
	"github.com/yashrajoria/storefront-service/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

const ProductsCollection = "products"

// ProductFilter narrows ListProducts. Empty fields do not filter.
type ProductFilter struct {
	Name string
	Size string
}

// BSON builds the query document. Name is matched as a literal,
// case-insensitive substring.
func (f ProductFilter) BSON() bson.M {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(f.Name), "$options": "i"}
	}
	if f.Size != "" {
		filter["sizes"] = f.Size
	}
	return filter
}

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(ProductsCollection),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert product: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert product: unexpected id type %T", result.InsertedID)
	}
	product.ID = id
	return id, nil
}

// Find skips offset matches, then returns at most limit of them in insertion
// order.
func (r *ProductRepository) Find(ctx context.Context, filter ProductFilter, limit, offset int) (products []models.Product, err error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductRepository.Find",
		attribute.Int("db.limit", limit),
		attribute.Int("db.offset", offset),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter.BSON(), findOptions)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products = []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// FindByIDs returns the products among ids that exist, in one round trip.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find products by id: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront-service/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestProductFilter_BSON(t *testing.T) {
	assert.Empty(t, ProductFilter{}.BSON())

	f := ProductFilter{Name: "t.shirt", Size: "large"}.BSON()
	assert.Equal(t, bson.M{"$regex": `t\.shirt`, "$options": "i"}, f["name"])
	assert.Equal(t, "large", f["sizes"])
}

func productDoc(id primitive.ObjectID, name string, price float64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "price", Value: price},
		{Key: "sizes", Value: bson.A{"small", "large"}},
	}
}

func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewProductRepository(mt.DB)

		p := &models.Product{Name: "Shirt", Price: 10, Sizes: []string{"large"}}
		id, err := repo.Create(context.Background(), p)
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
		assert.Equal(mt, id, p.ID)
	})

	mt.Run("create write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))
		repo := NewProductRepository(mt.DB)

		_, err := repo.Create(context.Background(), &models.Product{Name: "Shirt", Price: 10, Sizes: []string{"s"}})
		assert.ErrorContains(mt, err, "insert product")
	})

	mt.Run("find decodes cursor", func(mt *mtest.T) {
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		ns := mt.DB.Name() + "." + ProductsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			productDoc(id1, "Shirt", 10),
			productDoc(id2, "Jeans", 25.5),
		))
		repo := NewProductRepository(mt.DB)

		products, err := repo.Find(context.Background(), ProductFilter{Size: "large"}, 10, 0)
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, id1, products[0].ID)
		assert.Equal(mt, "Jeans", products[1].Name)
		assert.Equal(mt, 25.5, products[1].Price)
		assert.Equal(mt, []string{"small", "large"}, products[1].Sizes)
	})

	mt.Run("find empty returns empty slice", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + ProductsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewProductRepository(mt.DB)

		products, err := repo.Find(context.Background(), ProductFilter{Name: "nothing"}, 10, 20)
		require.NoError(mt, err)
		assert.NotNil(mt, products)
		assert.Empty(mt, products)
	})

	mt.Run("find command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad query",
		}))
		repo := NewProductRepository(mt.DB)

		_, err := repo.Find(context.Background(), ProductFilter{}, 10, 0)
		assert.ErrorContains(mt, err, "find products")
	})

	mt.Run("find by ids", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + ProductsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, productDoc(id, "Shirt", 10)))
		repo := NewProductRepository(mt.DB)

		products, err := repo.FindByIDs(context.Background(), []primitive.ObjectID{id, primitive.NewObjectID()})
		require.NoError(mt, err)
		require.Len(mt, products, 1)
		assert.Equal(mt, id, products[0].ID)
	})

	mt.Run("find by no ids skips the query", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)

		products, err := repo.FindByIDs(context.Background(), nil)
		require.NoError(mt, err)
		assert.Empty(mt, products)
	})
}

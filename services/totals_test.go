package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yashrajoria/storefront-service/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderTotal_DecimalExact(t *testing.T) {
	p := models.Product{ID: primitive.NewObjectID(), Price: 0.1}
	items := []models.OrderItem{{ProductID: p.ID, Qty: 3}}

	assert.Equal(t, 0.3, OrderTotal(items, map[primitive.ObjectID]models.Product{p.ID: p}))
}

func TestOrderTotal_MissingProductContributesZero(t *testing.T) {
	p := models.Product{ID: primitive.NewObjectID(), Price: 2.5}
	items := []models.OrderItem{
		{ProductID: p.ID, Qty: 2},
		{ProductID: primitive.NewObjectID(), Qty: 100},
	}

	assert.Equal(t, 5.0, OrderTotal(items, map[primitive.ObjectID]models.Product{p.ID: p}))
	assert.Equal(t, 0.0, OrderTotal(nil, nil))
}

func TestBuildOrderView_RepeatedProduct(t *testing.T) {
	p := models.Product{ID: primitive.NewObjectID(), Name: "Cap", Price: 7}
	view := BuildOrderView(models.OrderWithProducts{
		ID:       primitive.NewObjectID(),
		Items:    []models.OrderItem{{ProductID: p.ID, Qty: 1}, {ProductID: p.ID, Qty: 2}},
		Products: []models.Product{p},
	})

	assert.Len(t, view.Items, 2)
	assert.Equal(t, 21.0, view.Total)
	assert.Equal(t, "Cap", view.Items[1].ProductDetails.Name)
}

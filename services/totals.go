package services

import (
	"github.com/shopspring/decimal"
	"github.com/yashrajoria/storefront-service/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderTotal sums qty*price over items using decimal arithmetic. Items whose
// product is absent from products contribute nothing.
func OrderTotal(items []models.OrderItem, products map[primitive.ObjectID]models.Product) float64 {
	total := decimal.Zero
	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok {
			continue
		}
		line := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(item.Qty)))
		total = total.Add(line)
	}
	return total.InexactFloat64()
}

// BuildOrderView shapes a joined order for clients.
func BuildOrderView(order models.OrderWithProducts) models.OrderView {
	byID := make(map[primitive.ObjectID]models.Product, len(order.Products))
	for _, p := range order.Products {
		byID[p.ID] = p
	}

	items := make([]models.OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		view := models.OrderItemView{Qty: item.Qty}
		if p, ok := byID[item.ProductID]; ok {
			view.ProductDetails = &models.ProductDetails{
				Name: p.Name,
				ID:   p.ID.Hex(),
			}
		}
		items = append(items, view)
	}

	return models.OrderView{
		ID:    order.ID.Hex(),
		Items: items,
		Total: OrderTotal(order.Items, byID),
	}
}

package routes

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yashrajoria/storefront-service/controllers"
	"github.com/yashrajoria/storefront-service/models"
	"github.com/yashrajoria/storefront-service/services"
)

type stubProducts struct{}

func (stubProducts) CreateProduct(context.Context, services.CreateProductRequest) (string, error) {
	return "", nil
}

func (stubProducts) ListProducts(context.Context, services.ListProductsParams) (*models.ProductPage, error) {
	return &models.ProductPage{}, nil
}

type stubOrders struct{}

func (stubOrders) CreateOrder(context.Context, services.CreateOrderRequest) (string, error) {
	return "", nil
}

func (stubOrders) GetOrdersForUser(context.Context, services.GetOrdersParams) (*models.OrderPage, error) {
	return &models.OrderPage{}, nil
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterProductRoutes(r, controllers.NewProductController(stubProducts{}, nil))
	RegisterOrderRoutes(r, controllers.NewOrderController(stubOrders{}))
	RegisterHealthRoutes(r, controllers.NewHealthController(stubPinger{}))

	got := map[string]bool{}
	for _, ri := range r.Routes() {
		got[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		http.MethodGet + " /products",
		http.MethodPost + " /products",
		http.MethodPost + " /orders",
		http.MethodGet + " /orders/:userId",
		http.MethodGet + " /health",
	} {
		assert.True(t, got[want], want)
	}
}

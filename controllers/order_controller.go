package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-service/common/logger"
	"github.com/yashrajoria/storefront-service/services"
	"go.uber.org/zap"
)

type OrderController struct {
	service OrderServiceAPI
}

func NewOrderController(service OrderServiceAPI) *OrderController {
	registerTagNames()
	return &OrderController{service: service}
}

// CreateOrder handles POST /orders.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c, "Invalid create order request", zap.Error(err))
		_ = c.Error(bindingError(err))
		return
	}

	items := make([]services.CreateOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.CreateOrderItem{ProductID: *it.ProductID, Qty: it.Qty})
	}

	id, err := oc.service.CreateOrder(c.Request.Context(), services.CreateOrderRequest{
		UserID: *req.UserID,
		Items:  items,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetOrders handles GET /orders/:userId.
func (oc *OrderController) GetOrders(c *gin.Context) {
	var q ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	page, err := oc.service.GetOrdersForUser(c.Request.Context(), services.GetOrdersParams{
		UserID: c.Param("userId"),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

package services

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/yashrajoria/storefront-service/common/errors"
	"github.com/yashrajoria/storefront-service/common/logger"
	"github.com/yashrajoria/storefront-service/common/telemetry"
	"github.com/yashrajoria/storefront-service/models"
	awspkg "github.com/yashrajoria/storefront-service/pkg/aws"
	"github.com/yashrajoria/storefront-service/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	msgInvalidProductID = "Invalid product ID format: %s"
	msgMissingProducts  = "One or more product IDs do not exist in the database"
)

type CreateOrderItem struct {
	ProductID string
	Qty       int
}

type CreateOrderRequest struct {
	UserID string
	Items  []CreateOrderItem
}

type GetOrdersParams struct {
	UserID string
	Limit  int
	Offset int
}

type OrderService struct {
	orders    repository.OrderRepo
	products  repository.ProductRepo
	publisher EventPublisher
	metrics   MetricsRecorder
}

// NewOrderService wires the order service. publisher and metrics may be nil.
func NewOrderService(orders repository.OrderRepo, products repository.ProductRepo, publisher EventPublisher, metrics MetricsRecorder) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		publisher: publisher,
		metrics:   metrics,
	}
}

// CreateOrder checks that every referenced product exists and stores the
// order as given. The check and the insert are not atomic.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (id string, err error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderService.CreateOrder",
		attribute.String("order.user_id", req.UserID),
		attribute.Int("order.items", len(req.Items)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	items := make([]models.OrderItem, 0, len(req.Items))
	distinct := make(map[primitive.ObjectID]struct{}, len(req.Items))
	for _, it := range req.Items {
		oid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return "", apperrors.InvalidArgument(fmt.Sprintf(msgInvalidProductID, it.ProductID))
		}
		if it.Qty <= 0 {
			return "", apperrors.InvalidArgument("qty must be greater than 0")
		}
		items = append(items, models.OrderItem{ProductID: oid, Qty: it.Qty})
		distinct[oid] = struct{}{}
	}

	ids := make([]primitive.ObjectID, 0, len(distinct))
	for oid := range distinct {
		ids = append(ids, oid)
	}
	var found []models.Product
	if len(ids) > 0 {
		found, err = s.products.FindByIDs(ctx, ids)
		if err != nil {
			logger.Error(ctx, "Failed to look up order products", err)
			return "", apperrors.Internal("Internal server error", err)
		}
	}
	foundDistinct := make(map[primitive.ObjectID]struct{}, len(found))
	for _, p := range found {
		foundDistinct[p.ID] = struct{}{}
	}
	if len(foundDistinct) != len(distinct) {
		logger.Warn(ctx, "Order references unknown products",
			zap.Int("requested", len(distinct)),
			zap.Int("found", len(foundDistinct)),
		)
		return "", apperrors.InvalidArgument(msgMissingProducts)
	}

	order := &models.Order{UserID: req.UserID, Items: items}
	oid, err := s.orders.Create(ctx, order)
	if err != nil {
		logger.Error(ctx, "Failed to create order", err, zap.String("user_id", req.UserID))
		return "", apperrors.Internal("Failed to create order", err)
	}

	logger.Info(ctx, "Order created",
		zap.String("order_id", oid.Hex()),
		zap.String("user_id", req.UserID),
	)
	s.publishOrderCreated(ctx, order)
	recordCount(ctx, s.metrics, awspkg.MetricOrdersCreated, map[string]string{"Service": "storefront-service"})
	return oid.Hex(), nil
}

// publishOrderCreated sends the event in the background. Failures are logged
// and counted; they never fail the order.
func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order) {
	if s.publisher == nil {
		return
	}

	evt := models.OrderCreatedEvent{
		Event:     models.EventOrderCreated,
		OrderID:   order.ID.Hex(),
		UserID:    order.UserID,
		Items:     make([]models.OrderCreatedItem, 0, len(order.Items)),
		Timestamp: time.Now().UTC(),
	}
	for _, it := range order.Items {
		evt.Items = append(evt.Items, models.OrderCreatedItem{ProductID: it.ProductID.Hex(), Qty: it.Qty})
	}

	requestID := logger.GetRequestID(ctx)
	go func() {
		bgCtx, cancel := context.WithTimeout(logger.WithContext(context.Background(), requestID), backgroundTimeout)
		defer cancel()
		if err := s.publisher.PublishOrderCreated(bgCtx, evt); err != nil {
			logger.Error(bgCtx, "Failed to publish order event", err, zap.String("order_id", evt.OrderID))
			recordCount(bgCtx, s.metrics, awspkg.MetricOrderEventsFailed, map[string]string{"Service": "storefront-service"})
		}
	}()
}

// GetOrdersForUser returns one page of a user's orders with item details and
// totals computed from current product prices.
func (s *OrderService) GetOrdersForUser(ctx context.Context, params GetOrdersParams) (page *models.OrderPage, err error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderService.GetOrdersForUser",
		attribute.String("order.user_id", params.UserID),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	orders, err := s.orders.FindByUserWithProducts(ctx, params.UserID, params.Limit, params.Offset)
	if err != nil {
		logger.Error(ctx, "Failed to fetch orders", err, zap.String("user_id", params.UserID))
		return nil, apperrors.Internal(err.Error(), nil)
	}

	data := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		data = append(data, BuildOrderView(o))
	}

	return &models.OrderPage{
		Data: data,
		Page: orderPage(params.Offset, params.Limit, len(data)),
	}, nil
}

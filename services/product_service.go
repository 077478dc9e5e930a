package services

import (
	"context"
	"strings"

	apperrors "github.com/yashrajoria/storefront-service/common/errors"
	"github.com/yashrajoria/storefront-service/common/logger"
	"github.com/yashrajoria/storefront-service/common/telemetry"
	"github.com/yashrajoria/storefront-service/models"
	awspkg "github.com/yashrajoria/storefront-service/pkg/aws"
	"github.com/yashrajoria/storefront-service/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type CreateProductRequest struct {
	Name  string
	Price float64
	Sizes []string
}

// ListProductsParams defines the parameters for listing products. Empty Name
// and Size do not filter.
type ListProductsParams struct {
	Name   string
	Size   string
	Limit  int
	Offset int
}

type ProductService struct {
	repo    repository.ProductRepo
	metrics MetricsRecorder
}

func NewProductService(repo repository.ProductRepo, metrics MetricsRecorder) *ProductService {
	return &ProductService{
		repo:    repo,
		metrics: metrics,
	}
}

// CreateProduct stores a new product and returns its hex id. Names are not
// required to be unique.
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (id string, err error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductService.CreateProduct",
		attribute.String("product.name", req.Name),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	if req.Price <= 0 {
		return "", apperrors.InvalidArgument("price must be greater than 0")
	}
	if len(req.Sizes) == 0 {
		return "", apperrors.InvalidArgument("sizes must not be empty")
	}
	for _, size := range req.Sizes {
		if strings.TrimSpace(size) == "" {
			return "", apperrors.InvalidArgument("sizes must not contain empty labels")
		}
	}

	product := &models.Product{
		Name:  req.Name,
		Price: req.Price,
		Sizes: req.Sizes,
	}
	oid, err := s.repo.Create(ctx, product)
	if err != nil {
		logger.Error(ctx, "Failed to create product", err, zap.String("name", req.Name))
		return "", apperrors.Internal("Failed to create product", err)
	}

	logger.Info(ctx, "Product created", zap.String("product_id", oid.Hex()))
	recordCount(ctx, s.metrics, awspkg.MetricProductsCreated, map[string]string{"Service": "storefront-service"})
	return oid.Hex(), nil
}

// ListProducts returns one page of products matching params.
func (s *ProductService) ListProducts(ctx context.Context, params ListProductsParams) (page *models.ProductPage, err error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductService.ListProducts",
		attribute.String("filter.name", params.Name),
		attribute.String("filter.size", params.Size),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	filter := repository.ProductFilter{Name: params.Name, Size: params.Size}
	products, err := s.repo.Find(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		logger.Error(ctx, "Failed to list products", err)
		return nil, apperrors.Internal(err.Error(), nil)
	}

	data := make([]models.ProductSummary, 0, len(products))
	for _, p := range products {
		data = append(data, models.ProductSummary{
			ID:    p.ID.Hex(),
			Name:  p.Name,
			Price: p.Price,
		})
	}

	return &models.ProductPage{
		Data: data,
		Page: productPage(params.Offset, params.Limit, len(data)),
	}, nil
}

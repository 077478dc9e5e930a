package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-service/common/logger"
	"github.com/yashrajoria/storefront-service/services"
	"go.uber.org/zap"
)

type ProductController struct {
	service ProductServiceAPI
	cache   *CacheManager
}

// NewProductController builds a controller. cache may be nil.
func NewProductController(service ProductServiceAPI, cache *CacheManager) *ProductController {
	registerTagNames()
	return &ProductController{
		service: service,
		cache:   cache,
	}
}

// CreateProduct handles POST /products.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c, "Invalid create product request", zap.Error(err))
		_ = c.Error(bindingError(err))
		return
	}

	id, err := pc.service.CreateProduct(c.Request.Context(), services.CreateProductRequest{
		Name:  *req.Name,
		Price: req.Price,
		Sizes: req.Sizes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := pc.cache.Invalidate(c.Request.Context()); err != nil {
		logger.Error(c, "Failed to invalidate product cache", err)
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetProducts handles GET /products.
func (pc *ProductController) GetProducts(c *gin.Context) {
	var q ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	page, version, ok := pc.cache.GetProductList(c.Request.Context(), q)
	if ok {
		c.JSON(http.StatusOK, page)
		return
	}

	page, err := pc.service.ListProducts(c.Request.Context(), services.ListProductsParams{
		Name:   q.Name,
		Size:   q.Size,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	pc.cache.SetProductListAsync(version, q, page)
	c.JSON(http.StatusOK, page)
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront-service/controllers"
)

func RegisterProductRoutes(r gin.IRouter, pc *controllers.ProductController) {
	productRoutes := r.Group("/products")
	{
		productRoutes.GET("", pc.GetProducts)
		productRoutes.POST("", pc.CreateProduct)
	}
}

func RegisterOrderRoutes(r gin.IRouter, oc *controllers.OrderController) {
	orderRoutes := r.Group("/orders")
	{
		orderRoutes.POST("", oc.CreateOrder)
		orderRoutes.GET("/:userId", oc.GetOrders)
	}
}

func RegisterHealthRoutes(r gin.IRouter, hc *controllers.HealthController) {
	r.GET("/health", hc.Health)
}

package router

import (
	"github.com/labstack/echo/v4"

	"sharespace/internal/adapter/api/handler"
	"sharespace/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/v1/products")
	products.Use(authMiddleware.Authenticate)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.GetByID)

	myProducts := e.Group("/v1/my-products")
	myProducts.Use(authMiddleware.Authenticate)
	myProducts.GET("", productHandler.ListMine)
	myProducts.POST("", productHandler.Create)
	myProducts.PUT("/:id", productHandler.Update)
	myProducts.DELETE("/:id", productHandler.Delete)

	admin := e.Group("/v1/admin/products")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.PUT("/:id", productHandler.Update)
	admin.PUT("/:id/status", productHandler.SetStatus)
	admin.DELETE("/:id", productHandler.Delete)
}

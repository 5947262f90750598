package router

import (
	"github.com/labstack/echo/v4"

	"sharespace/internal/adapter/api/handler"
	"sharespace/internal/adapter/api/middleware"
)

func SetupRatingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	ratingHandler := handler.GetRatingHandler()

	sellers := e.Group("/v1/sellers")
	sellers.Use(authMiddleware.Authenticate)

	sellers.GET("/:id/ratings", ratingHandler.ListForSeller)
	sellers.POST("/:id/ratings", ratingHandler.RateSeller)
}

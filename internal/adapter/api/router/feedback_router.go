package router

import (
	"github.com/labstack/echo/v4"

	"sharespace/internal/adapter/api/handler"
	"sharespace/internal/adapter/api/middleware"
)

func SetupFeedbackRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	feedbackHandler := handler.GetFeedbackHandler()

	feedback := e.Group("/v1/feedback")
	feedback.Use(authMiddleware.Authenticate)
	feedback.POST("", feedbackHandler.Submit)

	admin := e.Group("/v1/admin/feedback")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("", feedbackHandler.List)
	admin.PUT("/:id/status", feedbackHandler.SetStatus)
	admin.DELETE("/:id", feedbackHandler.Delete)
}

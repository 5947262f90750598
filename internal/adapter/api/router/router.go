package router

import (
	"github.com/labstack/echo/v4"

	"sharespace/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupProductRouter(e, authMiddleware, adminMiddleware)
	SetupFeedbackRouter(e, authMiddleware, adminMiddleware)
	SetupRatingRouter(e, authMiddleware)
	SetupHealthRouter(e)
}

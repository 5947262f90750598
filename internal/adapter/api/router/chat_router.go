package router

import (
	"github.com/labstack/echo/v4"

	"sharespace/internal/adapter/api/handler"
	"sharespace/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.POST("", chatHandler.CreateConversation)
	conversations.GET("", chatHandler.ListConversations)

	conversations.GET("/:id/messages", chatHandler.GetMessages)
	conversations.POST("/:id/messages", chatHandler.SendMessage)
	conversations.PUT("/:id/messages/:messageId", chatHandler.EditMessage)
	conversations.DELETE("/:id/messages/:messageId", chatHandler.DeleteMessage)
	conversations.PUT("/:id/messages/:messageId/read", chatHandler.MarkMessageRead)

	conversations.POST("/:id/typing", chatHandler.SetTyping)
}

package router

import (
	"github.com/labstack/echo/v4"

	"sharespace/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the realtime endpoint. Authentication happens
// inside the handler because browser WebSocket clients cannot set headers.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleConnection)
}

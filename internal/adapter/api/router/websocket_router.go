package router

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	// Token auth happens inside the handler (query param).
	e.GET("/ws", wsHandler.HandleWebSocket)
}

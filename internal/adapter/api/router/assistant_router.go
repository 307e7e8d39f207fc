package router

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/adapter/api/handler"
	"campusfind/internal/adapter/api/middleware"
)

func SetupAssistantRouter(e *echo.Echo, assistantHandler *handler.AssistantHandler, authMiddleware *middleware.AuthMiddleware) {
	// Kept at /api/chat for compatibility with existing assistant clients.
	e.POST("/api/chat", assistantHandler.Chat, authMiddleware.Authenticate)
}

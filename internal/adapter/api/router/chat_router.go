package router

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/adapter/api/handler"
	"campusfind/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("", chatHandler.GetUserChats)
	chats.GET("/:id", chatHandler.GetChatByID)
	chats.PUT("/:id/read", chatHandler.MarkChatAsRead)
	chats.GET("/:id/messages", chatHandler.GetChatMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
}

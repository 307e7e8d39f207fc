package router

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/adapter/api/handler"
	"campusfind/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Report       *handler.ReportHandler
	Claim        *handler.ClaimHandler
	Chat         *handler.ChatHandler
	Admin        *handler.AdminHandler
	Notification *handler.NotificationHandler
	Assistant    *handler.AssistantHandler
	WebSocket    *handler.WebSocketHandler
	Health       *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupReportRouter(e, h.Report, h.Claim, authMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupNotificationRouter(e, h.Notification, authMiddleware)
	SetupAdminRouter(e, h.Admin, authMiddleware, adminMiddleware)
	SetupAssistantRouter(e, h.Assistant, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupHealthRouter(e, h.Health)
}

package router

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/adapter/api/handler"
	"campusfind/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, adminHandler *handler.AdminHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/claims", adminHandler.ListClaims)
	admin.GET("/returns", adminHandler.ListReturns)

	admin.POST("/reports/:id/claims/:claimId/verify", adminHandler.VerifyClaim)
	admin.POST("/reports/:id/claims/:claimId/reject", adminHandler.RejectClaim)
	admin.POST("/reports/:id/returns/:returnId/verify", adminHandler.VerifyReturn)
	admin.POST("/reports/:id/returns/:returnId/reject", adminHandler.RejectReturn)

	admin.POST("/chats/:id/join", adminHandler.JoinChat)
	admin.POST("/chats/:id/quick-action", adminHandler.QuickAction)
}

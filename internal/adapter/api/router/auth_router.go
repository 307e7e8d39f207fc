package router

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/adapter/api/handler"
	"campusfind/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/v1/auth")

	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
	auth.PATCH("/me", authHandler.UpdateProfile, authMiddleware.Authenticate)
}

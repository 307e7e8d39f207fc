package router

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/adapter/api/handler"
	"campusfind/internal/adapter/api/middleware"
)

func SetupReportRouter(e *echo.Echo, reportHandler *handler.ReportHandler, claimHandler *handler.ClaimHandler, authMiddleware *middleware.AuthMiddleware) {
	reports := e.Group("/v1/reports")
	reports.Use(authMiddleware.Authenticate)

	reports.GET("", reportHandler.ListReports)
	reports.POST("", reportHandler.SubmitReport)
	reports.GET("/:id", reportHandler.GetReport)
	reports.PUT("/:id", reportHandler.UpdateReport)
	reports.DELETE("/:id", reportHandler.DeleteReport)

	reports.POST("/:id/claims", claimHandler.SubmitClaim)
	reports.POST("/:id/returns", claimHandler.SubmitReturn)

	e.GET("/v1/my-reports", reportHandler.ListMyReports, authMiddleware.Authenticate)
}

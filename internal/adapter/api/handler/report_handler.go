package handler

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/usecase"
	"campusfind/pkg/response"
	"campusfind/pkg/utils"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
	}
}

type submitReportRequest struct {
	Type          string `json:"type" validate:"required,oneof=lost found"`
	Category      string `json:"category" validate:"required"`
	ItemName      string `json:"item_name" validate:"required,min=2,max=120"`
	Location      string `json:"location" validate:"required"`
	Date          string `json:"date" validate:"required"`
	Description   string `json:"description"`
	ContactEmail  string `json:"contact_email" validate:"required,email"`
	ContactNumber string `json:"contact_number"`
	IDTag         string `json:"id_tag"`
	OwnerTag      string `json:"owner_tag"`
	ImageBase64   string `json:"image_base64"`
}

type updateReportRequest struct {
	Category      string `json:"category"`
	ItemName      string `json:"item_name" validate:"omitempty,min=2,max=120"`
	Location      string `json:"location"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
	ContactNumber string `json:"contact_number"`
	IDTag         string `json:"id_tag"`
	OwnerTag      string `json:"owner_tag"`
	ImageBase64   string `json:"image_base64"`
}

func (h *ReportHandler) SubmitReport(c echo.Context) error {
	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	report, err := h.reportUseCase.SubmitReport(c.Request().Context(), userID, usecase.SubmitReportInput{
		Type:          req.Type,
		Category:      req.Category,
		ItemName:      req.ItemName,
		Location:      req.Location,
		Date:          req.Date,
		Description:   req.Description,
		ContactEmail:  req.ContactEmail,
		ContactNumber: req.ContactNumber,
		IDTag:         req.IDTag,
		OwnerTag:      req.OwnerTag,
		ImageBase64:   req.ImageBase64,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, report)
}

func (h *ReportHandler) GetReport(c echo.Context) error {
	report, err := h.reportUseCase.GetReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}

func (h *ReportHandler) ListReports(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	reports, total, err := h.reportUseCase.ListReports(c.Request().Context(), usecase.ListReportsInput{
		Type:     c.QueryParam("type"),
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		Limit:    pagination.PageSize,
		Offset:   pagination.Offset,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reports, total, pagination.Page, pagination.PageSize)
}

func (h *ReportHandler) ListMyReports(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	reports, total, err := h.reportUseCase.ListMyReports(c.Request().Context(), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reports, total, pagination.Page, pagination.PageSize)
}

func (h *ReportHandler) UpdateReport(c echo.Context) error {
	var req updateReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	report, err := h.reportUseCase.UpdateReport(c.Request().Context(), userID, c.Param("id"), usecase.UpdateReportInput{
		Category:      req.Category,
		ItemName:      req.ItemName,
		Location:      req.Location,
		Date:          req.Date,
		Description:   req.Description,
		ContactEmail:  req.ContactEmail,
		ContactNumber: req.ContactNumber,
		IDTag:         req.IDTag,
		OwnerTag:      req.OwnerTag,
		ImageBase64:   req.ImageBase64,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}

func (h *ReportHandler) DeleteReport(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.reportUseCase.DeleteReport(c.Request().Context(), userID, c.Param("id"), false); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Report deleted"})
}

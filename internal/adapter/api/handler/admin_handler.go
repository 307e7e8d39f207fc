package handler

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/usecase"
	"campusfind/pkg/response"
	"campusfind/pkg/utils"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
	chatUseCase  *usecase.ChatUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase, chatUseCase *usecase.ChatUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		chatUseCase:  chatUseCase,
	}
}

type resolveCaseRequest struct {
	AdminNotes string `json:"admin_notes" validate:"max=500"`
}

type quickActionRequest struct {
	Message      string `json:"message" validate:"required"`
	ReportStatus string `json:"report_status" validate:"omitempty,oneof=pending claim_pending return_pending resolved returned"`
}

func (h *AdminHandler) ListClaims(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	claims, total, err := h.adminUseCase.ListClaims(c.Request().Context(), c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, claims, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) ListReturns(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	returns, total, err := h.adminUseCase.ListReturns(c.Request().Context(), c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, returns, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) VerifyClaim(c echo.Context) error {
	var req resolveCaseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	claim, err := h.adminUseCase.VerifyClaim(c.Request().Context(), adminID, c.Param("id"), c.Param("claimId"), req.AdminNotes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claim)
}

func (h *AdminHandler) RejectClaim(c echo.Context) error {
	var req resolveCaseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	claim, err := h.adminUseCase.RejectClaim(c.Request().Context(), adminID, c.Param("id"), c.Param("claimId"), req.AdminNotes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claim)
}

func (h *AdminHandler) VerifyReturn(c echo.Context) error {
	var req resolveCaseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	ret, err := h.adminUseCase.VerifyReturn(c.Request().Context(), adminID, c.Param("id"), c.Param("returnId"), req.AdminNotes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ret)
}

func (h *AdminHandler) RejectReturn(c echo.Context) error {
	var req resolveCaseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	ret, err := h.adminUseCase.RejectReturn(c.Request().Context(), adminID, c.Param("id"), c.Param("returnId"), req.AdminNotes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ret)
}

func (h *AdminHandler) JoinChat(c echo.Context) error {
	adminID := c.Get("uid").(string)

	chat, err := h.adminUseCase.JoinChat(c.Request().Context(), adminID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *AdminHandler) QuickAction(c echo.Context) error {
	var req quickActionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	message, err := h.chatUseCase.QuickAction(c.Request().Context(), adminID, c.Param("id"), usecase.QuickActionInput{
		Message:      req.Message,
		ReportStatus: req.ReportStatus,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

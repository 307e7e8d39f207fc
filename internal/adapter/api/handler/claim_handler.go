package handler

import (
	"github.com/labstack/echo/v4"

	"campusfind/internal/usecase"
	"campusfind/pkg/response"
)

type ClaimHandler struct {
	claimUseCase *usecase.ClaimUseCase
}

func NewClaimHandler(claimUseCase *usecase.ClaimUseCase) *ClaimHandler {
	return &ClaimHandler{
		claimUseCase: claimUseCase,
	}
}

type submitClaimRequest struct {
	ContactInfo    string `json:"contact_info" validate:"required"`
	Proof          string `json:"proof" validate:"required,min=10"`
	AdditionalInfo string `json:"additional_info"`
}

type submitReturnRequest struct {
	ContactInfo string `json:"contact_info" validate:"required"`
	Description string `json:"description" validate:"required,min=10"`
	ImageBase64 string `json:"image_base64"`
}

func (h *ClaimHandler) SubmitClaim(c echo.Context) error {
	var req submitClaimRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	claim, err := h.claimUseCase.SubmitClaim(c.Request().Context(), userID, c.Param("id"), usecase.SubmitClaimInput{
		ContactInfo:    req.ContactInfo,
		Proof:          req.Proof,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, claim)
}

func (h *ClaimHandler) SubmitReturn(c echo.Context) error {
	var req submitReturnRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	ret, err := h.claimUseCase.SubmitReturn(c.Request().Context(), userID, c.Param("id"), usecase.SubmitReturnInput{
		ContactInfo: req.ContactInfo,
		Description: req.Description,
		ImageBase64: req.ImageBase64,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, ret)
}

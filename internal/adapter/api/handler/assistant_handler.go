package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campusfind/internal/usecase"
)

type AssistantHandler struct {
	assistantUseCase *usecase.AssistantUseCase
}

func NewAssistantHandler(assistantUseCase *usecase.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{
		assistantUseCase: assistantUseCase,
	}
}

type assistantRequest struct {
	Message string `json:"message"`
}

// Chat keeps the minimal wire contract the assistant clients expect:
// {message} in, {response} out, any failure a 500 with {error}.
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req assistantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "invalid request body"})
	}

	userID, _ := c.Get("uid").(string)

	reply, err := h.assistantUseCase.Ask(c.Request().Context(), userID, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"response": reply})
}

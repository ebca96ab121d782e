package handler

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/usecase"
	"rewear/pkg/response"
)

// AssistantHandler answers free-text shopping questions with catalog matches.
type AssistantHandler struct {
	queryUseCase *usecase.QueryUseCase
}

func NewAssistantHandler(queryUseCase *usecase.QueryUseCase) *AssistantHandler {
	return &AssistantHandler{
		queryUseCase: queryUseCase,
	}
}

type assistantRequest struct {
	Message string `json:"message"`
}

func (h *AssistantHandler) Search(c echo.Context) error {
	var req assistantRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	reply, err := h.queryUseCase.AssistantReply(c.Request().Context(), req.Message)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reply)
}

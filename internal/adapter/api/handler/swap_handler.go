package handler

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/domain/entity"
	"rewear/internal/usecase"
	"rewear/pkg/response"
)

type SwapHandler struct {
	swapUseCase *usecase.SwapUseCase
}

func NewSwapHandler(swapUseCase *usecase.SwapUseCase) *SwapHandler {
	return &SwapHandler{
		swapUseCase: swapUseCase,
	}
}

type createSwapRequest struct {
	Product     string `json:"product" validate:"required"`
	RequestedBy string `json:"requestedBy" validate:"required"`
	Mode        string `json:"mode" validate:"required"`
	SwapImage   string `json:"swapImage"`
}

type swapStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *SwapHandler) CreateSwapRequest(c echo.Context) error {
	var req createSwapRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.swapUseCase.CreateSwapRequest(c.Request().Context(), usecase.CreateSwapInput{
		ProductID:   req.Product,
		RequestedBy: req.RequestedBy,
		Mode:        entity.SwapMode(req.Mode),
		SwapImage:   req.SwapImage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{"requestId": request.ID})
}

func (h *SwapHandler) ListByProduct(c echo.Context) error {
	requests, err := h.swapUseCase.ListByProduct(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, requests)
}

func (h *SwapHandler) ListByUser(c echo.Context) error {
	requests, err := h.swapUseCase.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, requests)
}

func (h *SwapHandler) UpdateStatus(c echo.Context) error {
	var req swapStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.swapUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), entity.SwapStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}

	data := map[string]string{"status": string(result.Request.Status)}
	if len(result.Warnings) > 0 {
		return response.SuccessWithWarnings(c, data, result.Warnings)
	}
	return response.Success(c, data)
}

func (h *SwapHandler) DeleteSwapRequest(c echo.Context) error {
	if err := h.swapUseCase.DeleteSwapRequest(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Swap request deleted successfully"})
}

package handler

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/usecase"
	"rewear/pkg/errors"
	"rewear/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Bio     *string `json:"bio" validate:"omitempty,max=500"`
}

type amountRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

// GetProfile returns the account behind the session token.
func (h *UserHandler) GetProfile(c echo.Context) error {
	uid, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) ToggleLike(c echo.Context) error {
	liked, err := h.userUseCase.ToggleLikedItem(c.Request().Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"productId": c.Param("productId"),
		"liked":     liked,
	})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), c.Param("id"), usecase.UpdateProfileInput{
		Name:    req.Name,
		Address: req.Address,
		Bio:     req.Bio,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) RecordEarnings(c echo.Context) error {
	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.RecordEarnings(c.Request().Context(), c.Param("id"), req.Amount)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) RecordSpent(c echo.Context) error {
	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.RecordSpent(c.Request().Context(), c.Param("id"), req.Amount)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

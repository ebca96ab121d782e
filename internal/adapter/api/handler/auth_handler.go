package handler

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/usecase"
	"rewear/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
	userUseCase *usecase.UserUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, userUseCase *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type detailsRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type loginResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
	Role   string `json:"role"`
	// AdminAccessToken repeats the session token for admins and is null otherwise.
	AdminAccessToken *string `json:"adminAccessToken"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Address:  req.Address,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{"userId": userID})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	resp := loginResponse{
		UserID: result.UserID,
		Token:  result.Token,
		Role:   result.Role,
	}
	if result.IsAdmin {
		resp.AdminAccessToken = &result.Token
	}
	return response.Success(c, resp)
}

func (h *AuthHandler) Details(c echo.Context) error {
	var req detailsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.GetProfile(c.Request().Context(), req.UserID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

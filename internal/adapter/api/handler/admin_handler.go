package handler

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/usecase"
	"rewear/pkg/response"
	"rewear/pkg/utils"
)

type AdminHandler struct {
	adminUseCase   *usecase.AdminUseCase
	userUseCase    *usecase.UserUseCase
	productUseCase *usecase.ProductUseCase
}

func NewAdminHandler(
	adminUseCase *usecase.AdminUseCase,
	userUseCase *usecase.UserUseCase,
	productUseCase *usecase.ProductUseCase,
) *AdminHandler {
	return &AdminHandler{
		adminUseCase:   adminUseCase,
		userUseCase:    userUseCase,
		productUseCase: productUseCase,
	}
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.adminUseCase.Stats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

// ListUsers returns one page of all users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userUseCase.ListUsers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	start, end := pagination.Window(len(users))
	return response.Paginated(c, users[start:end], int64(len(users)), pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.userUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.userUseCase.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "User deleted successfully"})
}

// ListProducts returns one page of all products with their owners.
func (h *AdminHandler) ListProducts(c echo.Context) error {
	products, err := h.productUseCase.ListProducts(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	start, end := pagination.Window(len(products))
	return response.Paginated(c, products[start:end], int64(len(products)), pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.productUseCase.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Product deleted successfully"})
}

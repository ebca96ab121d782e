package handler

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/domain/entity"
	"rewear/internal/usecase"
	"rewear/pkg/response"
	"rewear/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
	queryUseCase   *usecase.QueryUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase, queryUseCase *usecase.QueryUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		queryUseCase:   queryUseCase,
	}
}

type createProductRequest struct {
	ProductName string   `json:"productName" validate:"required"`
	Category    string   `json:"category" validate:"required,category"`
	Description string   `json:"description" validate:"required"`
	HeroImage   string   `json:"heroImage" validate:"required"`
	Images      []string `json:"images"`
	Address     string   `json:"address" validate:"required"`
	User        string   `json:"user" validate:"required"`
}

type productStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		OwnerID:     req.User,
		Name:        req.ProductName,
		Category:    req.Category,
		Description: req.Description,
		HeroImage:   req.HeroImage,
		Images:      req.Images,
		Address:     req.Address,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productUseCase.ListProducts(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) ListUserProducts(c echo.Context) error {
	products, err := h.productUseCase.ListByOwner(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) ListNearby(c echo.Context) error {
	products, err := h.queryUseCase.Nearby(c.Request().Context(), c.Param("address"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) ListTopLiked(c echo.Context) error {
	limit := utils.QueryLimit(c, "limit", usecase.DefaultTopLimit, usecase.MaxTopLikedLimit)

	products, err := h.queryUseCase.TopLiked(c.Request().Context(), limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	products, err := h.queryUseCase.Search(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) LikeProduct(c echo.Context) error {
	likes, err := h.productUseCase.LikeProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int64{"likes": likes})
}

func (h *ProductHandler) UpdateStatus(c echo.Context) error {
	var req productStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	status := entity.ProductStatus(req.Status)
	if err := h.productUseCase.SetStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": string(status)})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productUseCase.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Product deleted successfully"})
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"rewear/internal/domain/entity"
	"rewear/internal/domain/repository"
	"rewear/pkg/errors"
)

const (
	SearchLimit       = 5
	DefaultTopLimit   = 10
	MaxTopLikedLimit  = 50
	noResultsReply    = "Sorry, I couldn't find any products matching your criteria. Would you like to try a different search?"
	foundResultsReply = "Found %d amazing products for you! Here are the top recommendations:"
)

// QueryUseCase serves read-only views over the catalog.
type QueryUseCase struct {
	productRepo repository.ProductRepository
}

func NewQueryUseCase(productRepo repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{
		productRepo: productRepo,
	}
}

type AssistantReply struct {
	Reply    string            `json:"reply"`
	Products []*entity.Product `json:"products"`
}

// Search matches name, category or description among Available products.
func (uc *QueryUseCase) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.Validation("Product name is required", nil)
	}

	products, err := uc.productRepo.Search(ctx, query, entity.ProductAvailable, SearchLimit)
	if err != nil {
		return nil, errors.Wrap("Failed to search products", err)
	}
	return products, nil
}

func (uc *QueryUseCase) TopLiked(ctx context.Context, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLikedLimit {
		limit = MaxTopLikedLimit
	}

	products, err := uc.productRepo.ListTopLiked(ctx, limit)
	if err != nil {
		return nil, errors.Wrap("Failed to list top liked products", err)
	}
	return products, nil
}

func (uc *QueryUseCase) Nearby(ctx context.Context, address string) ([]*entity.Product, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.Validation("Address is required", nil)
	}

	products, err := uc.productRepo.ListByAddress(ctx, address)
	if err != nil {
		return nil, errors.Wrap("Failed to list nearby products", err)
	}
	return products, nil
}

func (uc *QueryUseCase) AssistantReply(ctx context.Context, message string) (*AssistantReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.Validation("Message is required", nil)
	}

	products, err := uc.Search(ctx, message)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return &AssistantReply{Reply: noResultsReply, Products: products}, nil
	}
	return &AssistantReply{
		Reply:    fmt.Sprintf(foundResultsReply, len(products)),
		Products: products,
	}, nil
}

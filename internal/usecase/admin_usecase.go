package usecase

import (
	"context"

	"rewear/internal/domain/repository"
	"rewear/pkg/errors"
)

type Stats struct {
	Users        int64 `json:"users"`
	Products     int64 `json:"products"`
	SwapRequests int64 `json:"swapRequests"`
}

type AdminUseCase struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	swapRepo    repository.SwapRequestRepository
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	swapRepo repository.SwapRequestRepository,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:    userRepo,
		productRepo: productRepo,
		swapRepo:    swapRepo,
	}
}

func (uc *AdminUseCase) Stats(ctx context.Context) (*Stats, error) {
	users, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap("Failed to count users", err)
	}
	products, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap("Failed to count products", err)
	}
	requests, err := uc.swapRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap("Failed to count swap requests", err)
	}

	return &Stats{
		Users:        users,
		Products:     products,
		SwapRequests: requests,
	}, nil
}

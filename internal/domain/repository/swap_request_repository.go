package repository

import (
	"context"

	"rewear/internal/domain/entity"
)

type SwapRequestRepository interface {
	Create(ctx context.Context, request *entity.SwapRequest) error
	GetByID(ctx context.Context, id string) (*entity.SwapRequest, error)
	List(ctx context.Context) ([]*entity.SwapRequest, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.SwapRequest, error)
	ListByRequester(ctx context.Context, userID string) ([]*entity.SwapRequest, error)
	// UpdateStatus writes to only while the stored status is still from. A request that
	// has moved on returns errors.InvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to entity.SwapStatus) error
	Delete(ctx context.Context, id string) error
	DeleteByProduct(ctx context.Context, productID string) (int, error)
	DeleteByRequester(ctx context.Context, userID string) (int, error)
	Count(ctx context.Context) (int64, error)
}

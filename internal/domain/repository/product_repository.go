package repository

import (
	"context"

	"rewear/internal/domain/entity"
)

// ProductRepository returns errors.NotFound for ids that do not resolve.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error)
	ListByAddress(ctx context.Context, fragment string) ([]*entity.Product, error)
	ListTopLiked(ctx context.Context, limit int) ([]*entity.Product, error)
	Search(ctx context.Context, query string, status entity.ProductStatus, limit int) ([]*entity.Product, error)
	IncrementLikes(ctx context.Context, id string) (int64, error)
	// RegisterSwapInterest bumps likes and moves the product to In Negotiation in one write.
	RegisterSwapInterest(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status entity.ProductStatus) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

package repository

import (
	"context"

	"rewear/internal/domain/entity"
)

// UserRepository stores emails lower-cased and rejects duplicates with a validation error.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdateProfile(ctx context.Context, id string, update entity.ProfileUpdate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	AwardSwapPoints(ctx context.Context, id string, points int64) error
	RecordEarnings(ctx context.Context, id string, amount float64) error
	RecordSpent(ctx context.Context, id string, amount float64) error
	SetLikedItem(ctx context.Context, userID, productID string, liked bool) error
	RemoveLikedItemEverywhere(ctx context.Context, productID string) (int, error)
}

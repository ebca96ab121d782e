package repository

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rewear/internal/domain/entity"
	"rewear/internal/domain/repository"
	"rewear/pkg/errors"
)

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) repository.UserRepository {
	return &gormUserRepository{
		db: db,
	}
}

func (r *gormUserRepository) Create(ctx context.Context, user *entity.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.LikedItems == nil {
		user.LikedItems = []string{}
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Validation("Email already registered", err)
		}
		return errors.Store("Failed to create user", err)
	}
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, mapGormError("User", "Failed to get user", err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, mapGormError("User", "Failed to get user by email", err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	result := make(map[string]*entity.User, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return result, nil
	}

	var users []*entity.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Store("Failed to fetch users", err)
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

func (r *gormUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, errors.Store("Failed to list users", err)
	}
	return users, nil
}

func (r *gormUserRepository) UpdateProfile(ctx context.Context, id string, update entity.ProfileUpdate) error {
	columns := map[string]interface{}{"updated_at": time.Now()}
	if update.Name != nil {
		columns["name"] = *update.Name
	}
	if update.Address != nil {
		columns["address"] = *update.Address
	}
	if update.Bio != nil {
		columns["bio"] = *update.Bio
	}

	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).UpdateColumns(columns)
	return requireAffected("User", "Failed to update profile", result)
}

func (r *gormUserRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	return requireAffected("User", "Failed to delete user", result)
}

func (r *gormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, errors.Store("Failed to count users", err)
	}
	return count, nil
}

func (r *gormUserRepository) increment(ctx context.Context, id, message string, columns map[string]interface{}) error {
	columns["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).UpdateColumns(columns)
	return requireAffected("User", message, result)
}

func (r *gormUserRepository) AwardSwapPoints(ctx context.Context, id string, points int64) error {
	return r.increment(ctx, id, "Failed to award swap points", map[string]interface{}{
		"points":           gorm.Expr("points + ?", points),
		"successful_swaps": gorm.Expr("successful_swaps + ?", 1),
	})
}

func (r *gormUserRepository) RecordEarnings(ctx context.Context, id string, amount float64) error {
	return r.increment(ctx, id, "Failed to record earnings", map[string]interface{}{
		"earnings":         gorm.Expr("earnings + ?", amount),
		"total_sold_items": gorm.Expr("total_sold_items + ?", 1),
	})
}

func (r *gormUserRepository) RecordSpent(ctx context.Context, id string, amount float64) error {
	return r.increment(ctx, id, "Failed to record spending", map[string]interface{}{
		"spent":                 gorm.Expr("spent + ?", amount),
		"total_purchased_items": gorm.Expr("total_purchased_items + ?", 1),
	})
}

// SetLikedItem rewrites the JSON liked_items column inside a transaction.
func (r *gormUserRepository) SetLikedItem(ctx context.Context, userID, productID string, liked bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user entity.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return mapGormError("User", "Failed to update liked items", err)
		}

		items := withLikedItem(user.LikedItems, productID, liked)
		return tx.Model(&entity.User{}).Where("id = ?", userID).Select("liked_items", "updated_at").Updates(&entity.User{
			LikedItems: items,
			UpdatedAt:  time.Now(),
		}).Error
	})
	return errors.Wrap("Failed to update liked items", err)
}

func (r *gormUserRepository) RemoveLikedItemEverywhere(ctx context.Context, productID string) (int, error) {
	var users []*entity.User
	err := r.db.WithContext(ctx).
		Where("liked_items LIKE ?", `%"`+productID+`"%`).
		Find(&users).Error
	if err != nil {
		return 0, errors.Store("Failed to find users liking product", err)
	}

	updated := 0
	for _, user := range users {
		if !user.Likes(productID) {
			continue
		}
		err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", user.ID).Select("liked_items").Updates(&entity.User{
			LikedItems: withLikedItem(user.LikedItems, productID, false),
		}).Error
		if err != nil {
			return updated, errors.Store("Failed to remove liked product", err)
		}
		updated++
	}
	return updated, nil
}

func withLikedItem(items []string, productID string, liked bool) []string {
	out := make([]string, 0, len(items)+1)
	for _, id := range items {
		if id != productID {
			out = append(out, id)
		}
	}
	if liked {
		out = append(out, productID)
	}
	return out
}

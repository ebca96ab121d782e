package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rewear/internal/domain/entity"
	"rewear/internal/domain/repository"
	"rewear/pkg/errors"
)

type gormSwapRequestRepository struct {
	db *gorm.DB
}

func NewGormSwapRequestRepository(db *gorm.DB) repository.SwapRequestRepository {
	return &gormSwapRequestRepository{
		db: db,
	}
}

func (r *gormSwapRequestRepository) Create(ctx context.Context, request *entity.SwapRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return errors.Store("Failed to create swap request", err)
	}
	return nil
}

func (r *gormSwapRequestRepository) GetByID(ctx context.Context, id string) (*entity.SwapRequest, error) {
	var request entity.SwapRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, mapGormError("Swap request", "Failed to get swap request", err)
	}
	return &request, nil
}

func (r *gormSwapRequestRepository) List(ctx context.Context) ([]*entity.SwapRequest, error) {
	return r.find(ctx, "Failed to list swap requests", "")
}

func (r *gormSwapRequestRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.SwapRequest, error) {
	return r.find(ctx, "Failed to list swap requests for product", "product_id = ?", productID)
}

func (r *gormSwapRequestRepository) ListByRequester(ctx context.Context, userID string) ([]*entity.SwapRequest, error) {
	return r.find(ctx, "Failed to list swap requests for user", "requested_by = ?", userID)
}

func (r *gormSwapRequestRepository) find(ctx context.Context, message, where string, args ...interface{}) ([]*entity.SwapRequest, error) {
	db := r.db.WithContext(ctx).Order("created_at DESC")
	if where != "" {
		db = db.Where(where, args...)
	}

	requests := make([]*entity.SwapRequest, 0)
	if err := db.Find(&requests).Error; err != nil {
		return nil, errors.Store(message, err)
	}
	return requests, nil
}

func (r *gormSwapRequestRepository) UpdateStatus(ctx context.Context, id string, from, to entity.SwapStatus) error {
	result := r.db.WithContext(ctx).Model(&entity.SwapRequest{}).
		Where("id = ? AND status = ?", id, string(from)).
		UpdateColumns(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return errors.Store("Failed to update swap request status", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return errors.InvalidTransition(string(current.Status), string(to))
}

func (r *gormSwapRequestRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.SwapRequest{})
	return requireAffected("Swap request", "Failed to delete swap request", result)
}

func (r *gormSwapRequestRepository) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&entity.SwapRequest{})
	if result.Error != nil {
		return 0, errors.Store("Failed to delete swap requests for product", result.Error)
	}
	return int(result.RowsAffected), nil
}

func (r *gormSwapRequestRepository) DeleteByRequester(ctx context.Context, userID string) (int, error) {
	result := r.db.WithContext(ctx).Where("requested_by = ?", userID).Delete(&entity.SwapRequest{})
	if result.Error != nil {
		return 0, errors.Store("Failed to delete swap requests for user", result.Error)
	}
	return int(result.RowsAffected), nil
}

func (r *gormSwapRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.SwapRequest{}).Count(&count).Error; err != nil {
		return 0, errors.Store("Failed to count swap requests", err)
	}
	return count, nil
}

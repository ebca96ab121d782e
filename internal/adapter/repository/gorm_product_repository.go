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

type gormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) repository.ProductRepository {
	return &gormProductRepository{
		db: db,
	}
}

func (r *gormProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	product.FoldSearchFields()
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return errors.Store("Failed to create product", err)
	}
	return nil
}

func (r *gormProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, mapGormError("Product", "Failed to get product", err)
	}
	return &product, nil
}

func (r *gormProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	result := make(map[string]*entity.Product, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return result, nil
	}

	var products []*entity.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, errors.Store("Failed to fetch products", err)
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func (r *gormProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, errors.Store("Failed to list products", err)
	}
	return products, nil
}

func (r *gormProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, errors.Store("Failed to list products by owner", err)
	}
	return products, nil
}

func (r *gormProductRepository) ListByAddress(ctx context.Context, fragment string) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0)
	err := r.db.WithContext(ctx).
		Where(`address_key LIKE ? ESCAPE '\'`, containsPattern(fragment)).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, errors.Store("Failed to list nearby products", err)
	}
	return products, nil
}

func (r *gormProductRepository) ListTopLiked(ctx context.Context, limit int) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0)
	err := r.db.WithContext(ctx).
		Order("likes DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, errors.Store("Failed to list top liked products", err)
	}
	return products, nil
}

func (r *gormProductRepository) Search(ctx context.Context, query string, status entity.ProductStatus, limit int) ([]*entity.Product, error) {
	db := r.db.WithContext(ctx).
		Where("status = ?", status).
		Where(`search_text LIKE ? ESCAPE '\'`, containsPattern(query)).
		Order("likes DESC").
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	products := make([]*entity.Product, 0)
	if err := db.Find(&products).Error; err != nil {
		return nil, errors.Store("Failed to search products", err)
	}
	return products, nil
}

func (r *gormProductRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	var likes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Product{}).
			Where("id = ?", id).
			UpdateColumns(map[string]interface{}{
				"likes":      gorm.Expr("likes + ?", 1),
				"updated_at": time.Now(),
			})
		if err := requireAffected("Product", "Failed to like product", result); err != nil {
			return err
		}
		return tx.Model(&entity.Product{}).Where("id = ?", id).Pluck("likes", &likes).Error
	})
	if err != nil {
		return 0, errors.Wrap("Failed to like product", err)
	}
	return likes, nil
}

func (r *gormProductRepository) RegisterSwapInterest(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"likes":      gorm.Expr("likes + ?", 1),
			"status":     entity.ProductInNegotiation,
			"updated_at": time.Now(),
		})
	return requireAffected("Product", "Failed to update product for swap request", result)
}

func (r *gormProductRepository) UpdateStatus(ctx context.Context, id string, status entity.ProductStatus) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	return requireAffected("Product", "Failed to update product status", result)
}

func (r *gormProductRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Product{})
	return requireAffected("Product", "Failed to delete product", result)
}

func (r *gormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error; err != nil {
		return 0, errors.Store("Failed to count products", err)
	}
	return count, nil
}

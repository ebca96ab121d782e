package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rewear/internal/domain/entity"
	"rewear/internal/domain/repository"
	"rewear/internal/infrastructure/events"
	"rewear/pkg/errors"
	"rewear/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	swapRepo    repository.SwapRequestRepository
	publisher   events.Publisher
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	swapRepo repository.SwapRequestRepository,
	publisher events.Publisher,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		swapRepo:    swapRepo,
		publisher:   publisher,
	}
}

type CreateProductInput struct {
	OwnerID     string
	Name        string
	Category    string
	Description string
	HeroImage   string
	Images      []string
	Address     string
}

func (in CreateProductInput) validate() error {
	required := []struct {
		value, message string
	}{
		{in.OwnerID, "Owner is required"},
		{in.Name, "Product name is required"},
		{in.Description, "Description is required"},
		{in.HeroImage, "Hero image is required"},
		{in.Address, "Address is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Validation(r.message, nil)
		}
	}
	if !entity.IsValidCategory(in.Category) {
		return errors.Validation("Category is not supported", nil)
	}
	return nil
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.OwnerID); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Validation("Owner does not exist", err)
		}
		return nil, errors.Wrap("Failed to verify owner", err)
	}

	images := make([]string, 0, len(input.Images))
	for _, img := range input.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}

	product := &entity.Product{
		OwnerID:     input.OwnerID,
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		Description: strings.TrimSpace(input.Description),
		HeroImage:   strings.TrimSpace(input.HeroImage),
		Images:      images,
		Address:     strings.TrimSpace(input.Address),
		Likes:       0,
		Status:      entity.ProductAvailable,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap("Failed to create product", err)
	}

	logger.FromContext(ctx).Info("Product listed",
		zap.String("product_id", product.ID),
		zap.String("owner_id", product.OwnerID),
	)
	return product, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.ProductView, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap("Failed to get product", err)
	}

	views, err := uc.withOwners(ctx, []*entity.Product{product})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (uc *ProductUseCase) ListProducts(ctx context.Context) ([]*entity.ProductView, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap("Failed to list products", err)
	}
	return uc.withOwners(ctx, products)
}

func (uc *ProductUseCase) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	products, err := uc.productRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap("Failed to list products by owner", err)
	}
	return products, nil
}

func (uc *ProductUseCase) LikeProduct(ctx context.Context, id string) (int64, error) {
	likes, err := uc.productRepo.IncrementLikes(ctx, id)
	if err != nil {
		return 0, errors.Wrap("Failed to like product", err)
	}
	return likes, nil
}

func (uc *ProductUseCase) SetStatus(ctx context.Context, id string, status entity.ProductStatus) error {
	if !status.Valid() {
		return errors.Validation("Status must be one of: Available, In Negotiation, Sold", nil)
	}
	return errors.Wrap("Failed to update product status", uc.productRepo.UpdateStatus(ctx, id, status))
}

// DeleteProduct removes the product's swap requests and strips it from liked items
// before deleting the product, so an interrupted delete can simply be retried.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uc.productRepo.GetByID(ctx, id); err != nil {
		return errors.Wrap("Failed to get product", err)
	}

	removed, err := uc.swapRepo.DeleteByProduct(ctx, id)
	if err != nil {
		return errors.Wrap("Failed to delete swap requests for product", err)
	}

	unliked, err := uc.userRepo.RemoveLikedItemEverywhere(ctx, id)
	if err != nil {
		return errors.Wrap("Failed to remove product from liked items", err)
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap("Failed to delete product", err)
	}

	logger.FromContext(ctx).Info("Product deleted",
		zap.String("product_id", id),
		zap.Int("removed_requests", removed),
		zap.Int("unliked_by", unliked),
	)
	uc.publisher.Publish(events.TopicProductDeleted, events.ProductDeleted{
		ProductID:       id,
		RemovedRequests: removed,
		UnlikedBy:       unliked,
	})
	return nil
}

func (uc *ProductUseCase) withOwners(ctx context.Context, products []*entity.Product) ([]*entity.ProductView, error) {
	ownerIDs := make([]string, 0, len(products))
	for _, p := range products {
		ownerIDs = append(ownerIDs, p.OwnerID)
	}

	owners, err := uc.userRepo.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, errors.Wrap("Failed to load product owners", err)
	}

	views := make([]*entity.ProductView, 0, len(products))
	for _, p := range products {
		view := &entity.ProductView{Product: p}
		if owner, ok := owners[p.OwnerID]; ok {
			view.Owner = owner.Summary()
		}
		views = append(views, view)
	}
	return views, nil
}

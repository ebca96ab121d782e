package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"rewear/internal/domain/entity"
	"rewear/internal/domain/repository"
	"rewear/pkg/errors"
	"rewear/pkg/logger"
)

type UserUseCase struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	swapRepo    repository.SwapRequestRepository
	products    ProductRemover
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	swapRepo repository.SwapRequestRepository,
	products ProductRemover,
) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		productRepo: productRepo,
		swapRepo:    swapRepo,
		products:    products,
	}
}

type UpdateProfileInput struct {
	Name    *string
	Address *string
	Bio     *string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.Validation("User ID is required", nil)
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap("Failed to get user", err)
	}
	return user, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap("Failed to list users", err)
	}
	return users, nil
}

// AwardSwapPoints adds the completion reward and bumps the successful swap counter.
func (uc *UserUseCase) AwardSwapPoints(ctx context.Context, userID string) error {
	return errors.Wrap("Failed to award swap points", uc.userRepo.AwardSwapPoints(ctx, userID, entity.SwapRewardPoints))
}

// ToggleLikedItem flips membership of productID in the user's liked items and
// reports whether it is liked afterwards.
func (uc *UserUseCase) ToggleLikedItem(ctx context.Context, userID, productID string) (bool, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, errors.Wrap("Failed to get user", err)
	}

	if user.Likes(productID) {
		if err := uc.userRepo.SetLikedItem(ctx, userID, productID, false); err != nil {
			return false, errors.Wrap("Failed to update liked items", err)
		}
		return false, nil
	}

	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return false, errors.Wrap("Failed to get product", err)
	}
	if err := uc.userRepo.SetLikedItem(ctx, userID, productID, true); err != nil {
		return false, errors.Wrap("Failed to update liked items", err)
	}
	return true, nil
}

func (uc *UserUseCase) RecordEarnings(ctx context.Context, userID string, amount float64) (*entity.User, error) {
	if amount <= 0 {
		return nil, errors.Validation("Amount must be greater than 0", nil)
	}
	if err := uc.userRepo.RecordEarnings(ctx, userID, amount); err != nil {
		return nil, errors.Wrap("Failed to record earnings", err)
	}
	return uc.GetProfile(ctx, userID)
}

func (uc *UserUseCase) RecordSpent(ctx context.Context, userID string, amount float64) (*entity.User, error) {
	if amount <= 0 {
		return nil, errors.Validation("Amount must be greater than 0", nil)
	}
	if err := uc.userRepo.RecordSpent(ctx, userID, amount); err != nil {
		return nil, errors.Wrap("Failed to record spending", err)
	}
	return uc.GetProfile(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	update := entity.ProfileUpdate{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.Validation("Name cannot be empty", nil)
		}
		update.Name = &name
	}
	if input.Address != nil {
		address := strings.TrimSpace(*input.Address)
		if address == "" {
			return nil, errors.Validation("Address cannot be empty", nil)
		}
		update.Address = &address
	}
	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if utf8.RuneCountInString(bio) > entity.MaxBioLength {
			return nil, errors.Validation("Bio must be at most 500 characters", nil)
		}
		update.Bio = &bio
	}

	if err := uc.userRepo.UpdateProfile(ctx, userID, update); err != nil {
		return nil, errors.Wrap("Failed to update profile", err)
	}
	return uc.GetProfile(ctx, userID)
}

// DeleteUser removes the user's swap requests and listings before the account itself.
func (uc *UserUseCase) DeleteUser(ctx context.Context, userID string) error {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return errors.Wrap("Failed to get user", err)
	}

	removed, err := uc.swapRepo.DeleteByRequester(ctx, userID)
	if err != nil {
		return errors.Wrap("Failed to delete swap requests for user", err)
	}

	products, err := uc.productRepo.ListByOwner(ctx, userID)
	if err != nil {
		return errors.Wrap("Failed to list user products", err)
	}
	for _, p := range products {
		if err := uc.products.DeleteProduct(ctx, p.ID); err != nil && !errors.IsNotFound(err) {
			return err
		}
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return errors.Wrap("Failed to delete user", err)
	}

	logger.FromContext(ctx).Info("User deleted",
		zap.String("user_id", userID),
		zap.Int("removed_requests", removed),
		zap.Int("removed_products", len(products)),
	)
	return nil
}

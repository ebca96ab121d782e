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

type SwapUseCase struct {
	swapRepo    repository.SwapRequestRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	rewarder    SwapRewarder
	publisher   events.Publisher
}

func NewSwapUseCase(
	swapRepo repository.SwapRequestRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	rewarder SwapRewarder,
	publisher events.Publisher,
) *SwapUseCase {
	return &SwapUseCase{
		swapRepo:    swapRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		rewarder:    rewarder,
		publisher:   publisher,
	}
}

type CreateSwapInput struct {
	ProductID   string
	RequestedBy string
	Mode        entity.SwapMode
	SwapImage   string
}

// StatusUpdateResult carries the new request state and any secondary writes that failed.
type StatusUpdateResult struct {
	Request  *entity.SwapRequest
	Warnings []string
}

func (uc *SwapUseCase) CreateSwapRequest(ctx context.Context, input CreateSwapInput) (*entity.SwapRequest, error) {
	if strings.TrimSpace(input.ProductID) == "" {
		return nil, errors.Validation("Product is required", nil)
	}
	if strings.TrimSpace(input.RequestedBy) == "" {
		return nil, errors.Validation("Requester is required", nil)
	}
	if !input.Mode.Valid() {
		return nil, errors.Validation("Mode must be one of: Swap, Coins", nil)
	}

	swapImage := strings.TrimSpace(input.SwapImage)
	switch input.Mode {
	case entity.SwapModeSwap:
		if swapImage == "" {
			return nil, errors.Validation("Swap image is required for Swap mode", nil)
		}
	case entity.SwapModeCoins:
		swapImage = ""
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, errors.Wrap("Failed to get product", err)
	}
	if product.Status == entity.ProductSold {
		return nil, errors.Validation("Product is no longer available", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, input.RequestedBy); err != nil {
		return nil, errors.Wrap("Failed to get requester", err)
	}

	request := &entity.SwapRequest{
		ProductID:   input.ProductID,
		RequestedBy: input.RequestedBy,
		Mode:        input.Mode,
		SwapImage:   swapImage,
		Status:      entity.SwapPending,
	}
	if err := uc.swapRepo.Create(ctx, request); err != nil {
		return nil, errors.Wrap("Failed to create swap request", err)
	}

	log := logger.FromContext(ctx).With(
		zap.String("request_id", request.ID),
		zap.String("product_id", request.ProductID),
	)

	if err := uc.productRepo.RegisterSwapInterest(ctx, request.ProductID); err != nil {
		if delErr := uc.swapRepo.Delete(ctx, request.ID); delErr != nil {
			log.Error("Failed to roll back swap request", zap.Error(delErr))
		}
		return nil, errors.Wrap("Failed to update product for swap request", err)
	}

	log.Info("Swap request created", zap.String("mode", string(request.Mode)))
	uc.publisher.Publish(events.TopicSwapCreated, events.SwapCreated{
		RequestID:   request.ID,
		ProductID:   request.ProductID,
		RequestedBy: request.RequestedBy,
		Mode:        string(request.Mode),
	})
	return request, nil
}

func (uc *SwapUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.SwapRequestWithRequester, error) {
	requests, err := uc.swapRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap("Failed to list swap requests for product", err)
	}

	requesterIDs := make([]string, 0, len(requests))
	for _, r := range requests {
		requesterIDs = append(requesterIDs, r.RequestedBy)
	}
	users, err := uc.userRepo.GetByIDs(ctx, requesterIDs)
	if err != nil {
		return nil, errors.Wrap("Failed to load requesters", err)
	}

	rows := make([]*entity.SwapRequestWithRequester, 0, len(requests))
	for _, r := range requests {
		row := &entity.SwapRequestWithRequester{SwapRequest: r}
		if u, ok := users[r.RequestedBy]; ok {
			row.Requester = u.Summary()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (uc *SwapUseCase) ListByUser(ctx context.Context, userID string) ([]*entity.SwapRequestWithProduct, error) {
	requests, err := uc.swapRepo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, errors.Wrap("Failed to list swap requests for user", err)
	}

	productIDs := make([]string, 0, len(requests))
	for _, r := range requests {
		productIDs = append(productIDs, r.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, errors.Wrap("Failed to load requested products", err)
	}

	rows := make([]*entity.SwapRequestWithProduct, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, &entity.SwapRequestWithProduct{SwapRequest: r, Product: products[r.ProductID]})
	}
	return rows, nil
}

// UpdateStatus applies a transition. On Completed, marking the product Sold and
// rewarding both parties are best-effort; their failures come back as warnings.
func (uc *SwapUseCase) UpdateStatus(ctx context.Context, id string, status entity.SwapStatus) (*StatusUpdateResult, error) {
	if !status.Valid() {
		return nil, errors.Validation("Status must be one of: Pending, Accepted, Rejected, Completed", nil)
	}

	request, err := uc.swapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap("Failed to get swap request", err)
	}

	from := request.Status
	if !entity.CanTransitionSwap(from, status) {
		return nil, errors.InvalidTransition(string(from), string(status))
	}

	if err := uc.swapRepo.UpdateStatus(ctx, id, from, status); err != nil {
		return nil, errors.Wrap("Failed to update swap request status", err)
	}
	request.Status = status

	log := logger.FromContext(ctx).With(
		zap.String("request_id", id),
		zap.String("product_id", request.ProductID),
	)
	log.Info("Swap request status changed", zap.String("from", string(from)), zap.String("to", string(status)))

	result := &StatusUpdateResult{Request: request}
	if status == entity.SwapCompleted {
		result.Warnings = uc.settle(ctx, log, request)
	}

	uc.publisher.Publish(events.TopicSwapStatusChanged, events.SwapStatusChanged{
		RequestID: id,
		ProductID: request.ProductID,
		From:      string(from),
		To:        string(status),
	})
	return result, nil
}

func (uc *SwapUseCase) settle(ctx context.Context, log *zap.Logger, request *entity.SwapRequest) []string {
	warnings := make([]string, 0)

	if err := uc.productRepo.UpdateStatus(ctx, request.ProductID, entity.ProductSold); err != nil {
		log.Warn("Failed to mark product as sold", zap.Error(err))
		warnings = append(warnings, "Product could not be marked as Sold")
	}

	if err := uc.rewarder.AwardSwapPoints(ctx, request.RequestedBy); err != nil {
		log.Warn("Failed to award requester swap points", zap.String("user_id", request.RequestedBy), zap.Error(err))
		warnings = append(warnings, "Swap points could not be awarded to the requester")
	}

	product, err := uc.productRepo.GetByID(ctx, request.ProductID)
	if err != nil {
		log.Warn("Failed to load product owner for reward", zap.Error(err))
		return append(warnings, "Swap points could not be awarded to the owner")
	}
	if err := uc.rewarder.AwardSwapPoints(ctx, product.OwnerID); err != nil {
		log.Warn("Failed to award owner swap points", zap.String("user_id", product.OwnerID), zap.Error(err))
		warnings = append(warnings, "Swap points could not be awarded to the owner")
	}
	return warnings
}

func (uc *SwapUseCase) DeleteSwapRequest(ctx context.Context, id string) error {
	return errors.Wrap("Failed to delete swap request", uc.swapRepo.Delete(ctx, id))
}

// SweepOrphans deletes swap requests whose product or requester no longer exists.
func (uc *SwapUseCase) SweepOrphans(ctx context.Context) (int, error) {
	requests, err := uc.swapRepo.List(ctx)
	if err != nil {
		return 0, errors.Wrap("Failed to list swap requests", err)
	}
	if len(requests) == 0 {
		return 0, nil
	}

	productIDs := make([]string, 0, len(requests))
	userIDs := make([]string, 0, len(requests))
	for _, r := range requests {
		productIDs = append(productIDs, r.ProductID)
		userIDs = append(userIDs, r.RequestedBy)
	}

	products, err := uc.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return 0, errors.Wrap("Failed to load products", err)
	}
	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return 0, errors.Wrap("Failed to load users", err)
	}

	removed := 0
	for _, r := range requests {
		_, hasProduct := products[r.ProductID]
		_, hasUser := users[r.RequestedBy]
		if hasProduct && hasUser {
			continue
		}
		if err := uc.swapRepo.Delete(ctx, r.ID); err != nil && !errors.IsNotFound(err) {
			return removed, errors.Wrap("Failed to delete orphaned swap request", err)
		}
		removed++
	}

	if removed > 0 {
		logger.FromContext(ctx).Info("Removed orphaned swap requests", zap.Int("count", removed))
	}
	return removed, nil
}

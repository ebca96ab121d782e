package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"rewear/internal/domain/entity"
	"rewear/internal/domain/repository"
	"rewear/pkg/errors"
)

type firestoreSwapRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreSwapRequestRepository(client *firestore.Client) repository.SwapRequestRepository {
	return &firestoreSwapRequestRepository{
		client: client,
	}
}

func (r *firestoreSwapRequestRepository) requests() *firestore.CollectionRef {
	return r.client.Collection(swapRequestsCollection)
}

func (r *firestoreSwapRequestRepository) Create(ctx context.Context, request *entity.SwapRequest) error {
	if request.ID == "" {
		request.ID = r.requests().NewDoc().ID
	}

	now := time.Now()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now

	if _, err := r.requests().Doc(request.ID).Set(ctx, request); err != nil {
		return errors.Store("Failed to create swap request", err)
	}
	return nil
}

func (r *firestoreSwapRequestRepository) GetByID(ctx context.Context, id string) (*entity.SwapRequest, error) {
	doc, err := r.requests().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError("Swap request", "Failed to get swap request", err)
	}

	var request entity.SwapRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Store("Failed to parse swap request data", err)
	}
	return &request, nil
}

func (r *firestoreSwapRequestRepository) List(ctx context.Context) ([]*entity.SwapRequest, error) {
	return collect[entity.SwapRequest](r.requests().Documents(ctx), "Failed to list swap requests")
}

func (r *firestoreSwapRequestRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.SwapRequest, error) {
	return collect[entity.SwapRequest](
		r.requests().Where("productId", "==", productID).Documents(ctx),
		"Failed to list swap requests for product",
	)
}

func (r *firestoreSwapRequestRepository) ListByRequester(ctx context.Context, userID string) ([]*entity.SwapRequest, error) {
	return collect[entity.SwapRequest](
		r.requests().Where("requestedBy", "==", userID).Documents(ctx),
		"Failed to list swap requests for user",
	)
}

func (r *firestoreSwapRequestRepository) UpdateStatus(ctx context.Context, id string, from, to entity.SwapStatus) error {
	ref := r.requests().Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		current, err := doc.DataAt("status")
		if err != nil {
			return err
		}
		if status, _ := current.(string); status != string(from) {
			return errors.InvalidTransition(status, string(to))
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(to)},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	return mapFirestoreError("Swap request", "Failed to update swap request status", err)
}

func (r *firestoreSwapRequestRepository) Delete(ctx context.Context, id string) error {
	_, err := r.requests().Doc(id).Delete(ctx, firestore.Exists)
	return mapFirestoreError("Swap request", "Failed to delete swap request", err)
}

func (r *firestoreSwapRequestRepository) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	return deleteMatching(ctx, r.requests().Where("productId", "==", productID), "Failed to delete swap requests for product")
}

func (r *firestoreSwapRequestRepository) DeleteByRequester(ctx context.Context, userID string) (int, error) {
	return deleteMatching(ctx, r.requests().Where("requestedBy", "==", userID), "Failed to delete swap requests for user")
}

func (r *firestoreSwapRequestRepository) Count(ctx context.Context) (int64, error) {
	return countDocuments(ctx, r.requests().Query, "Failed to count swap requests")
}

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/domain/entity"
	"rewear/pkg/errors"
)

// newEmulatorClient connects to the Firestore emulator under a fresh project id so tests
// do not see each other's documents.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "rewear-"+uuid.New().String()[:8])
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestFirestoreUserEmailIsUnique(t *testing.T) {
	repo := NewFirestoreUserRepository(newEmulatorClient(t))
	ctx := context.Background()

	first := &entity.User{Name: "A", Email: "a@x.com"}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &entity.User{Name: "B", Email: " A@X.com "})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	found, err := repo.GetByEmail(ctx, "A@x.COM")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.True(t, errors.IsNotFound(repo.Delete(ctx, first.ID)))
	require.NoError(t, repo.Create(ctx, &entity.User{Name: "C", Email: "a@x.com"}))
}

func TestFirestoreUserCountersAndLikes(t *testing.T) {
	repo := NewFirestoreUserRepository(newEmulatorClient(t))
	ctx := context.Background()
	a := &entity.User{Name: "A", Email: "a@x.com"}
	b := &entity.User{Name: "B", Email: "b@x.com"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.AwardSwapPoints(ctx, a.ID, entity.SwapRewardPoints))
	require.NoError(t, repo.RecordEarnings(ctx, a.ID, 12.5))
	require.NoError(t, repo.SetLikedItem(ctx, a.ID, "p1", true))
	require.NoError(t, repo.SetLikedItem(ctx, a.ID, "p1", true))
	require.NoError(t, repo.SetLikedItem(ctx, b.ID, "p1", true))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(entity.SwapRewardPoints), got.Points)
	assert.Equal(t, int64(1), got.SuccessfulSwaps)
	assert.Equal(t, 12.5, got.Earnings)
	assert.Equal(t, []string{"p1"}, got.LikedItems)

	removed, err := repo.RemoveLikedItemEverywhere(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.True(t, errors.IsNotFound(repo.AwardSwapPoints(ctx, "ghost", 10)))
}

func TestFirestoreProductSearchAndNearby(t *testing.T) {
	repo := NewFirestoreProductRepository(newEmulatorClient(t))
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, p := range []*entity.Product{
		{ID: "p1", OwnerID: "u1", Name: "Cotton Kurta", Likes: 3, Status: entity.ProductAvailable, Address: "Pune", CreatedAt: base},
		{ID: "p2", OwnerID: "u1", Name: "Silk shirt", Description: "pairs with a KURTA set", Likes: 8, Status: entity.ProductAvailable, Address: "Delhi", CreatedAt: base},
		{ID: "p3", OwnerID: "u2", Name: "ÉLÉGANT Kurta", Likes: 3, Status: entity.ProductAvailable, Address: "MÜNCHEN", CreatedAt: base.Add(time.Hour)},
		{ID: "p4", OwnerID: "u2", Name: "Sold kurta", Likes: 50, Status: entity.ProductSold, Address: "Pune", CreatedAt: base},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	results, err := repo.Search(ctx, "kurta", entity.ProductAvailable, 5)
	require.NoError(t, err)
	ids := make([]string, 0, len(results))
	for _, p := range results {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p2", "p3", "p1"}, ids)

	accented, err := repo.Search(ctx, "élégant", entity.ProductAvailable, 5)
	require.NoError(t, err)
	require.Len(t, accented, 1)
	assert.Equal(t, "p3", accented[0].ID)

	nearby, err := repo.ListByAddress(ctx, "münchen")
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "p3", nearby[0].ID)

	top, err := repo.ListTopLiked(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "p4", top[0].ID)

	likes, err := repo.IncrementLikes(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), likes)

	_, err = repo.IncrementLikes(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestFirestoreSwapStatusAndCascade(t *testing.T) {
	repo := NewFirestoreSwapRequestRepository(newEmulatorClient(t))
	ctx := context.Background()

	requests := []*entity.SwapRequest{
		{ProductID: "p1", RequestedBy: "u1", Mode: entity.SwapModeSwap, Status: entity.SwapAccepted},
		{ProductID: "p1", RequestedBy: "u2", Mode: entity.SwapModeCoins, Status: entity.SwapPending},
		{ProductID: "p2", RequestedBy: "u1", Mode: entity.SwapModeSwap, Status: entity.SwapPending},
	}
	for _, r := range requests {
		require.NoError(t, repo.Create(ctx, r))
	}

	require.NoError(t, repo.UpdateStatus(ctx, requests[0].ID, entity.SwapAccepted, entity.SwapCompleted))
	err := repo.UpdateStatus(ctx, requests[0].ID, entity.SwapAccepted, entity.SwapCompleted)
	assert.True(t, errors.Is(err, errors.CodeInvalidTransition))
	assert.True(t, errors.IsNotFound(repo.UpdateStatus(ctx, "missing", entity.SwapPending, entity.SwapAccepted)))

	n, err := repo.DeleteByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.DeleteByRequester(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.True(t, errors.IsNotFound(repo.Delete(ctx, requests[1].ID)))
}

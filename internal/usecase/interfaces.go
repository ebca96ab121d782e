package usecase

import "context"

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

// SwapRewarder credits a user for a completed swap.
type SwapRewarder interface {
	AwardSwapPoints(ctx context.Context, userID string) error
}

// ProductRemover deletes a product together with everything that references it.
type ProductRemover interface {
	DeleteProduct(ctx context.Context, id string) error
}

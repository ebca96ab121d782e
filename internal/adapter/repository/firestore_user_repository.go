package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rewear/internal/domain/entity"
	"rewear/internal/domain/repository"
	"rewear/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) users() *firestore.CollectionRef {
	return r.client.Collection(usersCollection)
}

// Create claims userEmails/{email} and writes the user in one transaction so that
// concurrent registrations of the same address cannot both succeed.
func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.ID == "" {
		user.ID = r.users().NewDoc().ID
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.LikedItems == nil {
		user.LikedItems = []string{}
	}

	emailRef := r.client.Collection(userEmailsCollection).Doc(user.Email)
	userRef := r.users().Doc(user.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(emailRef, map[string]interface{}{"userId": user.ID}); err != nil {
			return err
		}
		return tx.Set(userRef, user)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Validation("Email already registered", err)
		}
		return errors.Store("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.users().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError("User", "Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Store("Failed to parse user data", err)
	}
	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.users().Where("email", "==", strings.ToLower(strings.TrimSpace(email))).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, errors.Store("Failed to get user by email", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Store("Failed to parse user data", err)
	}
	return &user, nil
}

func (r *firestoreUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	return getAll[entity.User](ctx, r.client, usersCollection, uniqueIDs(ids), "Failed to fetch users")
}

func (r *firestoreUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	return collect[entity.User](
		r.users().OrderBy("createdAt", firestore.Desc).Documents(ctx),
		"Failed to list users",
	)
}

func (r *firestoreUserRepository) UpdateProfile(ctx context.Context, id string, update entity.ProfileUpdate) error {
	updates := []firestore.Update{{Path: "updatedAt", Value: time.Now()}}
	if update.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *update.Name})
	}
	if update.Address != nil {
		updates = append(updates, firestore.Update{Path: "address", Value: *update.Address})
	}
	if update.Bio != nil {
		updates = append(updates, firestore.Update{Path: "bio", Value: *update.Bio})
	}

	_, err := r.users().Doc(id).Update(ctx, updates)
	return mapFirestoreError("User", "Failed to update profile", err)
}

func (r *firestoreUserRepository) Delete(ctx context.Context, id string) error {
	userRef := r.users().Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(userRef)
		if err != nil {
			return err
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return err
		}

		if user.Email != "" {
			if err := tx.Delete(r.client.Collection(userEmailsCollection).Doc(user.Email)); err != nil {
				return err
			}
		}
		return tx.Delete(userRef)
	})
	return mapFirestoreError("User", "Failed to delete user", err)
}

func (r *firestoreUserRepository) Count(ctx context.Context) (int64, error) {
	return countDocuments(ctx, r.users().Query, "Failed to count users")
}

func (r *firestoreUserRepository) AwardSwapPoints(ctx context.Context, id string, points int64) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "points", Value: firestore.Increment(points)},
		{Path: "successfulSwaps", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now()},
	})
	return mapFirestoreError("User", "Failed to award swap points", err)
}

func (r *firestoreUserRepository) RecordEarnings(ctx context.Context, id string, amount float64) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "earnings", Value: firestore.Increment(amount)},
		{Path: "totalSoldItems", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now()},
	})
	return mapFirestoreError("User", "Failed to record earnings", err)
}

func (r *firestoreUserRepository) RecordSpent(ctx context.Context, id string, amount float64) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "spent", Value: firestore.Increment(amount)},
		{Path: "totalPurchasedItems", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now()},
	})
	return mapFirestoreError("User", "Failed to record spending", err)
}

func (r *firestoreUserRepository) SetLikedItem(ctx context.Context, userID, productID string, liked bool) error {
	var value interface{} = firestore.ArrayRemove(productID)
	if liked {
		value = firestore.ArrayUnion(productID)
	}

	_, err := r.users().Doc(userID).Update(ctx, []firestore.Update{
		{Path: "likedItems", Value: value},
		{Path: "updatedAt", Value: time.Now()},
	})
	return mapFirestoreError("User", "Failed to update liked items", err)
}

func (r *firestoreUserRepository) RemoveLikedItemEverywhere(ctx context.Context, productID string) (int, error) {
	iter := r.users().Where("likedItems", "array-contains", productID).Documents(ctx)
	defer iter.Stop()

	updated := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return updated, errors.Store("Failed to find users liking product", err)
		}

		_, err = doc.Ref.Update(ctx, []firestore.Update{
			{Path: "likedItems", Value: firestore.ArrayRemove(productID)},
		})
		if err != nil {
			return updated, errors.Store("Failed to remove liked product", err)
		}
		updated++
	}
	return updated, nil
}

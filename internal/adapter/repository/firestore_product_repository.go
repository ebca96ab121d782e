package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"rewear/internal/domain/entity"
	"rewear/internal/domain/repository"
	"rewear/pkg/errors"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) products() *firestore.CollectionRef {
	return r.client.Collection(productsCollection)
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = r.products().NewDoc().ID
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	if _, err := r.products().Doc(product.ID).Set(ctx, product); err != nil {
		return errors.Store("Failed to create product", err)
	}
	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.products().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError("Product", "Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Store("Failed to parse product data", err)
	}
	return &product, nil
}

func (r *firestoreProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	return getAll[entity.Product](ctx, r.client, productsCollection, uniqueIDs(ids), "Failed to fetch products")
}

func (r *firestoreProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	return collect[entity.Product](
		r.products().OrderBy("createdAt", firestore.Desc).Documents(ctx),
		"Failed to list products",
	)
}

func (r *firestoreProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	products, err := collect[entity.Product](
		r.products().Where("ownerId", "==", ownerID).Documents(ctx),
		"Failed to list products by owner",
	)
	if err != nil {
		return nil, err
	}
	entity.NewestFirst(products)
	return products, nil
}

// ListByAddress filters in memory; Firestore has no substring operator.
func (r *firestoreProductRepository) ListByAddress(ctx context.Context, fragment string) ([]*entity.Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(fragment)
	matched := make([]*entity.Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Address), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *firestoreProductRepository) ListTopLiked(ctx context.Context, limit int) ([]*entity.Product, error) {
	return collect[entity.Product](
		r.products().
			OrderBy("likes", firestore.Desc).
			OrderBy("createdAt", firestore.Desc).
			Limit(limit).
			Documents(ctx),
		"Failed to list top liked products",
	)
}

func (r *firestoreProductRepository) Search(ctx context.Context, query string, status entity.ProductStatus, limit int) ([]*entity.Product, error) {
	candidates, err := collect[entity.Product](
		r.products().Where("status", "==", string(status)).Documents(ctx),
		"Failed to search products",
	)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]*entity.Product, 0)
	for _, p := range candidates {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}

	entity.RankProducts(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *firestoreProductRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	ref := r.products().Doc(id)

	var likes int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		current, err := doc.DataAt("likes")
		if err != nil {
			return err
		}
		if n, ok := current.(int64); ok {
			likes = n + 1
		} else {
			likes = 1
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "likes", Value: firestore.Increment(1)},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		return 0, mapFirestoreError("Product", "Failed to like product", err)
	}
	return likes, nil
}

func (r *firestoreProductRepository) RegisterSwapInterest(ctx context.Context, id string) error {
	_, err := r.products().Doc(id).Update(ctx, []firestore.Update{
		{Path: "likes", Value: firestore.Increment(1)},
		{Path: "status", Value: string(entity.ProductInNegotiation)},
		{Path: "updatedAt", Value: time.Now()},
	})
	return mapFirestoreError("Product", "Failed to update product for swap request", err)
}

func (r *firestoreProductRepository) UpdateStatus(ctx context.Context, id string, status entity.ProductStatus) error {
	_, err := r.products().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(status)},
		{Path: "updatedAt", Value: time.Now()},
	})
	return mapFirestoreError("Product", "Failed to update product status", err)
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.products().Doc(id).Delete(ctx, firestore.Exists)
	return mapFirestoreError("Product", "Failed to delete product", err)
}

func (r *firestoreProductRepository) Count(ctx context.Context) (int64, error) {
	return countDocuments(ctx, r.products().Query, "Failed to count products")
}

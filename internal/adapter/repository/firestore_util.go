package repository

import (
	"context"
	stderrors "errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rewear/pkg/errors"
)

const (
	usersCollection        = "users"
	userEmailsCollection   = "userEmails"
	productsCollection     = "products"
	swapRequestsCollection = "swapRequests"

	// Firestore caps GetAll and "in" queries at 30 references.
	firestoreBatchSize = 30
)

// mapFirestoreError turns a gRPC NotFound into errors.NotFound and wraps everything else as a store error.
// Application errors returned from inside a transaction pass through unchanged.
func mapFirestoreError(resource, message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	if status.Code(err) == codes.NotFound {
		return errors.NotFound(resource, err)
	}
	return errors.Store(message, err)
}

// collect drains an iterator, decoding each document with decode.
func collect[T any](iter *firestore.DocumentIterator, message string) ([]*T, error) {
	defer iter.Stop()

	items := make([]*T, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Store(message, err)
		}

		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, errors.Store(message, err)
		}
		items = append(items, &item)
	}
	return items, nil
}

// getAll fetches documents by id in batches, skipping ids that do not exist.
func getAll[T any](ctx context.Context, client *firestore.Client, collection string, ids []string, message string) (map[string]*T, error) {
	result := make(map[string]*T, len(ids))
	for i := 0; i < len(ids); i += firestoreBatchSize {
		end := i + firestoreBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		refs := make([]*firestore.DocumentRef, 0, end-i)
		for _, id := range ids[i:end] {
			refs = append(refs, client.Collection(collection).Doc(id))
		}

		docs, err := client.GetAll(ctx, refs)
		if err != nil {
			return nil, errors.Store(message, err)
		}

		for _, doc := range docs {
			if doc == nil || !doc.Exists() {
				continue
			}
			var item T
			if err := doc.DataTo(&item); err != nil {
				return nil, errors.Store(message, err)
			}
			result[doc.Ref.ID] = &item
		}
	}
	return result, nil
}

// deleteMatching removes every document the query yields and returns how many were removed.
func deleteMatching(ctx context.Context, query firestore.Query, message string) (int, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	deleted := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, errors.Store(message, err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return deleted, errors.Store(message, err)
		}
		deleted++
	}
	return deleted, nil
}

func countDocuments(ctx context.Context, query firestore.Query, message string) (int64, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Store(message, err)
	}
	return int64(len(docs)), nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

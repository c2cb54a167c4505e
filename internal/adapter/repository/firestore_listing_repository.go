package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		doc := r.client.Collection("listings").NewDoc()
		listing.ID = doc.ID
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	listing.ID = doc.Ref.ID

	return &listing, nil
}

func (r *firestoreListingRepository) ListBySeller(ctx context.Context, sellerUID, statusFilter string) ([]*entity.Listing, error) {
	query := r.client.Collection("listings").Query.Where("sellerUid", "==", sellerUID)

	if statusFilter != "" {
		query = query.Where("status", "==", statusFilter)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreListingRepository) ListRecent(ctx context.Context, limit int, cursor string) ([]*entity.Listing, string, error) {
	query := r.client.Collection("listings").Query.
		Where("status", "==", entity.ListingStatusActive)

	return r.page(ctx, query, limit, cursor)
}

func (r *firestoreListingRepository) ListByCategory(ctx context.Context, category string, limit int, cursor string) ([]*entity.Listing, string, error) {
	query := r.client.Collection("listings").Query.
		Where("status", "==", entity.ListingStatusActive).
		Where("category", "==", category)

	return r.page(ctx, query, limit, cursor)
}

func (r *firestoreListingRepository) Search(ctx context.Context, keywords []string, limit int, cursor string) ([]*entity.Listing, string, error) {
	if len(keywords) == 0 {
		return []*entity.Listing{}, "", nil
	}
	// Firestore caps array-contains-any at 10 values.
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}

	query := r.client.Collection("listings").Query.
		Where("status", "==", entity.ListingStatusActive).
		Where("searchKeywords", "array-contains-any", keywords)

	return r.page(ctx, query, limit, cursor)
}

// page runs an active-listing query ordered newest first, resuming after
// the decoded cursor position when one is supplied.
func (r *firestoreListingRepository) page(ctx context.Context, query firestore.Query, limit int, cursor string) ([]*entity.Listing, string, error) {
	query = query.
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)

	if cursor != "" {
		createdAt, id, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		query = query.StartAfter(createdAt, id)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	listings, err := r.collect(ctx, query.Documents(ctx))
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if limit > 0 && len(listings) == limit {
		last := listings[len(listings)-1]
		nextCursor = encodeCursor(last.CreatedAt, last.ID)
	}

	return listings, nextCursor, nil
}

func (r *firestoreListingRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*entity.Listing, error) {
	var listings []*entity.Listing

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID
		listings = append(listings, &listing)
	}

	if listings == nil {
		listings = []*entity.Listing{}
	}

	return listings, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now()

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) SetStatus(ctx context.Context, id, listingStatus string) error {
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: listingStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to update listing status", err)
	}

	return nil
}

func (r *firestoreListingRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "viewCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment listing views", err)
	}

	return nil
}

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

type firestoreOfferRepository struct {
	client *firestore.Client
}

func NewFirestoreOfferRepository(client *firestore.Client) repository.OfferRepository {
	return &firestoreOfferRepository{
		client: client,
	}
}

func (r *firestoreOfferRepository) Create(ctx context.Context, offer *entity.Offer) error {
	if offer.ID == "" {
		doc := r.client.Collection("offers").NewDoc()
		offer.ID = doc.ID
	}

	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	_, err := r.client.Collection("offers").Doc(offer.ID).Set(ctx, offer)
	if err != nil {
		return errors.Internal("Failed to create offer", err)
	}

	return nil
}

func (r *firestoreOfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	doc, err := r.client.Collection("offers").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Offer", err)
		}
		return nil, errors.Internal("Failed to get offer", err)
	}

	var offer entity.Offer
	if err := doc.DataTo(&offer); err != nil {
		return nil, errors.Internal("Failed to parse offer data", err)
	}
	offer.ID = doc.Ref.ID

	return &offer, nil
}

func (r *firestoreOfferRepository) ListByListing(ctx context.Context, listingID string) ([]*entity.Offer, error) {
	query := r.client.Collection("offers").Query.
		Where("listingId", "==", listingID).
		OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreOfferRepository) ListByBuyer(ctx context.Context, buyerUID, statusFilter string) ([]*entity.Offer, error) {
	query := r.client.Collection("offers").Query.Where("buyerUid", "==", buyerUID)
	if statusFilter != "" {
		query = query.Where("status", "==", statusFilter)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreOfferRepository) ListBySeller(ctx context.Context, sellerUID, statusFilter string) ([]*entity.Offer, error) {
	query := r.client.Collection("offers").Query.Where("sellerUid", "==", sellerUID)
	if statusFilter != "" {
		query = query.Where("status", "==", statusFilter)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreOfferRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*entity.Offer, error) {
	var offers []*entity.Offer

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate offers", err)
		}

		var offer entity.Offer
		if err := doc.DataTo(&offer); err != nil {
			return nil, errors.Internal("Failed to parse offer data", err)
		}
		offer.ID = doc.Ref.ID
		offers = append(offers, &offer)
	}

	if offers == nil {
		offers = []*entity.Offer{}
	}

	return offers, nil
}

func (r *firestoreOfferRepository) UpdateStatus(ctx context.Context, id, offerStatus string) error {
	_, err := r.client.Collection("offers").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: offerStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Offer", err)
		}
		return errors.Internal("Failed to update offer status", err)
	}

	return nil
}

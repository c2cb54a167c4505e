package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	ListByListing(ctx context.Context, listingID string) ([]*entity.Offer, error)
	ListByBuyer(ctx context.Context, buyerUID, status string) ([]*entity.Offer, error)
	ListBySeller(ctx context.Context, sellerUID, status string) ([]*entity.Offer, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

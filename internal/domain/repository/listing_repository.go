package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	ListBySeller(ctx context.Context, sellerUID, status string) ([]*entity.Listing, error)

	// ListRecent, ListByCategory and Search page through active listings
	// newest first. The cursor is opaque; an empty next cursor means the
	// final page was returned.
	ListRecent(ctx context.Context, limit int, cursor string) ([]*entity.Listing, string, error)
	ListByCategory(ctx context.Context, category string, limit int, cursor string) ([]*entity.Listing, string, error)
	Search(ctx context.Context, keywords []string, limit int, cursor string) ([]*entity.Listing, string, error)

	Update(ctx context.Context, listing *entity.Listing) error
	SetStatus(ctx context.Context, id, status string) error
	IncrementViews(ctx context.Context, id string) error
}

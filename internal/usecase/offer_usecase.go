package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

type OfferUseCase struct {
	offerRepo   repository.OfferRepository
	listingRepo repository.ListingRepository
}

func NewOfferUseCase(offerRepo repository.OfferRepository, listingRepo repository.ListingRepository) *OfferUseCase {
	return &OfferUseCase{
		offerRepo:   offerRepo,
		listingRepo: listingRepo,
	}
}

type MakeOfferInput struct {
	ListingID  string
	OfferPrice float64
	Message    string
	ExpiresAt  *time.Time
}

func (uc *OfferUseCase) Make(ctx context.Context, buyerUID string, input MakeOfferInput) (*entity.Offer, error) {
	if input.OfferPrice <= 0 {
		return nil, errors.BadRequest("Offer price must be greater than zero", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	if buyerUID == listing.SellerUID {
		return nil, errors.BadRequest("You cannot make an offer on your own listing", nil)
	}

	offer := &entity.Offer{
		ID:         uuid.New().String(),
		ListingID:  input.ListingID,
		BuyerUID:   buyerUID,
		SellerUID:  listing.SellerUID,
		OfferPrice: input.OfferPrice,
		Message:    input.Message,
		Status:     entity.OfferStatusPending,
		ExpiresAt:  input.ExpiresAt,
	}

	if err := uc.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	return offer, nil
}

func (uc *OfferUseCase) GetByID(ctx context.Context, userUID, offerID string) (*entity.Offer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if userUID != offer.BuyerUID && userUID != offer.SellerUID {
		return nil, errors.Forbidden("You are not a party to this offer", nil)
	}

	return offer, nil
}

// ListForListing returns the offers against a listing, newest first.
// Only the seller may enumerate them.
func (uc *OfferUseCase) ListForListing(ctx context.Context, userUID, listingID string) ([]*entity.Offer, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if userUID != listing.SellerUID {
		return nil, errors.Forbidden("Only the seller can view offers for this listing", nil)
	}

	return uc.offerRepo.ListByListing(ctx, listingID)
}

func (uc *OfferUseCase) ListForBuyer(ctx context.Context, buyerUID, statusFilter string) ([]*entity.Offer, error) {
	if statusFilter != "" && !entity.IsValidOfferStatus(statusFilter) {
		return nil, errors.BadRequest("Invalid offer status filter", nil)
	}
	return uc.offerRepo.ListByBuyer(ctx, buyerUID, statusFilter)
}

func (uc *OfferUseCase) ListForSeller(ctx context.Context, sellerUID, statusFilter string) ([]*entity.Offer, error) {
	if statusFilter != "" && !entity.IsValidOfferStatus(statusFilter) {
		return nil, errors.BadRequest("Invalid offer status filter", nil)
	}
	return uc.offerRepo.ListBySeller(ctx, sellerUID, statusFilter)
}

// SetStatus moves an offer through its lifecycle. Accepting an offer also
// marks the listing sold; the two writes are not atomic, so if the second
// fails the offer stays accepted and the error names the listing so the
// caller can reconcile.
func (uc *OfferUseCase) SetStatus(ctx context.Context, userUID, offerID, newStatus string) (*entity.Offer, error) {
	if !entity.IsValidOfferStatus(newStatus) {
		return nil, errors.BadRequest("Invalid offer status", nil)
	}

	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	switch newStatus {
	case entity.OfferStatusAccepted, entity.OfferStatusDeclined, entity.OfferStatusCountered:
		if userUID != offer.SellerUID {
			return nil, errors.Forbidden("Only the seller can respond to this offer", nil)
		}
	case entity.OfferStatusRetracted:
		if userUID != offer.BuyerUID {
			return nil, errors.Forbidden("Only the buyer can retract this offer", nil)
		}
	case entity.OfferStatusExpired:
		if userUID != offer.BuyerUID && userUID != offer.SellerUID {
			return nil, errors.Forbidden("You are not a party to this offer", nil)
		}
	default:
		return nil, errors.BadRequest("Offers cannot be moved back to pending", nil)
	}

	if !offer.CanTransitionTo(newStatus) {
		return nil, errors.Conflict("Offer is already " + offer.Status)
	}

	if err := uc.offerRepo.UpdateStatus(ctx, offerID, newStatus); err != nil {
		return nil, err
	}
	offer.Status = newStatus

	if newStatus == entity.OfferStatusAccepted {
		if err := uc.listingRepo.SetStatus(ctx, offer.ListingID, entity.ListingStatusSold); err != nil {
			// The offer status change has already committed.
			logger.Error("Offer %s accepted but listing %s was not marked sold: %v", offerID, offer.ListingID, err)
			return offer, errors.Internal("Offer accepted but listing "+offer.ListingID+" was not marked sold", err)
		}
	}

	return offer, nil
}

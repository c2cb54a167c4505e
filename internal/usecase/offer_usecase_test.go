package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
	"campusmarket/pkg/errors"
)

type offerFixture struct {
	uc        *OfferUseCase
	offers    *memoryOfferRepo
	listings  *memoryListingRepo
	listingID string
}

func newOfferFixture(t *testing.T) *offerFixture {
	t.Helper()

	offers := newMemoryOfferRepo()
	listings := newMemoryListingRepo()

	listing := &entity.Listing{
		SellerUID: "seller-1",
		Title:     "Mountain Bike",
		Price:     150,
		Category:  "Sports",
		Status:    entity.ListingStatusActive,
	}
	require.NoError(t, listings.Create(context.Background(), listing))

	return &offerFixture{
		uc:        NewOfferUseCase(offers, listings),
		offers:    offers,
		listings:  listings,
		listingID: listing.ID,
	}
}

func (f *offerFixture) makeOffer(t *testing.T, buyerUID string, price float64) *entity.Offer {
	t.Helper()
	offer, err := f.uc.Make(context.Background(), buyerUID, MakeOfferInput{
		ListingID:  f.listingID,
		OfferPrice: price,
	})
	require.NoError(t, err)
	return offer
}

func TestMakeOffer(t *testing.T) {
	f := newOfferFixture(t)

	offer := f.makeOffer(t, "buyer-1", 120)

	assert.Equal(t, entity.OfferStatusPending, offer.Status)
	assert.Equal(t, "seller-1", offer.SellerUID, "seller is taken from the listing, not the caller")
	assert.Equal(t, "buyer-1", offer.BuyerUID)
	assert.Equal(t, 120.0, offer.OfferPrice)
}

func TestMakeOfferRejectsSelfOffer(t *testing.T) {
	f := newOfferFixture(t)

	_, err := f.uc.Make(context.Background(), "seller-1", MakeOfferInput{
		ListingID:  f.listingID,
		OfferPrice: 120,
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestMakeOfferValidation(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	_, err := f.uc.Make(ctx, "buyer-1", MakeOfferInput{ListingID: f.listingID, OfferPrice: 0})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.uc.Make(ctx, "buyer-1", MakeOfferInput{ListingID: "no-such-listing", OfferPrice: 50})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestAcceptOfferMarksListingSold(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	offer := f.makeOffer(t, "buyer-1", 120)

	updated, err := f.uc.SetStatus(ctx, "seller-1", offer.ID, entity.OfferStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusAccepted, updated.Status)

	listing, err := f.listings.GetByID(ctx, f.listingID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusSold, listing.Status)
}

func TestAcceptOfferListingUpdateFailure(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	offer := f.makeOffer(t, "buyer-1", 120)
	f.listings.failSetStatus = true

	updated, err := f.uc.SetStatus(ctx, "seller-1", offer.ID, entity.OfferStatusAccepted)
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))

	// The offer transition has committed even though the listing write
	// failed; both the return value and the store reflect that.
	require.NotNil(t, updated)
	assert.Equal(t, entity.OfferStatusAccepted, updated.Status)

	stored, err := f.offers.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusAccepted, stored.Status)
}

func TestOfferTransitionsFromTerminalStatesConflict(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	offer := f.makeOffer(t, "buyer-1", 120)

	_, err := f.uc.SetStatus(ctx, "seller-1", offer.ID, entity.OfferStatusDeclined)
	require.NoError(t, err)

	// Declined is terminal for every actor.
	_, err = f.uc.SetStatus(ctx, "seller-1", offer.ID, entity.OfferStatusAccepted)
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = f.uc.SetStatus(ctx, "buyer-1", offer.ID, entity.OfferStatusRetracted)
	assert.True(t, errors.Is(err, "CONFLICT"))

	listing, err := f.listings.GetByID(ctx, f.listingID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusActive, listing.Status, "declined offers never touch the listing")
}

func TestOfferActorGuards(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	offer := f.makeOffer(t, "buyer-1", 120)

	// Only the seller responds.
	for _, status := range []string{entity.OfferStatusAccepted, entity.OfferStatusDeclined, entity.OfferStatusCountered} {
		_, err := f.uc.SetStatus(ctx, "buyer-1", offer.ID, status)
		assert.True(t, errors.Is(err, "FORBIDDEN"), "buyer must not be able to set %s", status)
	}

	// Only the buyer retracts.
	_, err := f.uc.SetStatus(ctx, "seller-1", offer.ID, entity.OfferStatusRetracted)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Outsiders touch nothing.
	_, err = f.uc.SetStatus(ctx, "stranger", offer.ID, entity.OfferStatusExpired)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	stored, err := f.offers.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusPending, stored.Status)
}

func TestOfferCannotReturnToPending(t *testing.T) {
	f := newOfferFixture(t)

	offer := f.makeOffer(t, "buyer-1", 120)

	_, err := f.uc.SetStatus(context.Background(), "seller-1", offer.ID, entity.OfferStatusPending)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.uc.SetStatus(context.Background(), "seller-1", offer.ID, "bogus")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestBuyerRetractsOffer(t *testing.T) {
	f := newOfferFixture(t)

	offer := f.makeOffer(t, "buyer-1", 120)

	updated, err := f.uc.SetStatus(context.Background(), "buyer-1", offer.ID, entity.OfferStatusRetracted)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusRetracted, updated.Status)
}

func TestListOffersForListingSellerOnly(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	f.makeOffer(t, "buyer-1", 120)
	f.makeOffer(t, "buyer-2", 110)

	offers, err := f.uc.ListForListing(ctx, "seller-1", f.listingID)
	require.NoError(t, err)
	assert.Len(t, offers, 2)

	_, err = f.uc.ListForListing(ctx, "buyer-1", f.listingID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestListOffersByPartyWithStatusFilter(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	first := f.makeOffer(t, "buyer-1", 120)
	f.makeOffer(t, "buyer-1", 110)

	_, err := f.uc.SetStatus(ctx, "seller-1", first.ID, entity.OfferStatusDeclined)
	require.NoError(t, err)

	pending, err := f.uc.ListForBuyer(ctx, "buyer-1", entity.OfferStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := f.uc.ListForSeller(ctx, "seller-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.uc.ListForBuyer(ctx, "buyer-1", "bogus")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestGetOfferPartyGuard(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	offer := f.makeOffer(t, "buyer-1", 120)

	got, err := f.uc.GetByID(ctx, "buyer-1", offer.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.ID, got.ID)

	_, err = f.uc.GetByID(ctx, "stranger", offer.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

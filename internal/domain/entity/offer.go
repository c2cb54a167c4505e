package entity

import "time"

const (
	OfferStatusPending   = "pending"
	OfferStatusAccepted  = "accepted"
	OfferStatusDeclined  = "declined"
	OfferStatusCountered = "countered"
	OfferStatusRetracted = "retracted"
	OfferStatusExpired   = "expired"
)

var OfferStatuses = []string{
	OfferStatusPending,
	OfferStatusAccepted,
	OfferStatusDeclined,
	OfferStatusCountered,
	OfferStatusRetracted,
	OfferStatusExpired,
}

type Offer struct {
	ID         string     `json:"id" firestore:"id"`
	ListingID  string     `json:"listing_id" firestore:"listingId"`
	BuyerUID   string     `json:"buyer_uid" firestore:"buyerUid"`
	SellerUID  string     `json:"seller_uid" firestore:"sellerUid"`
	OfferPrice float64    `json:"offer_price" firestore:"offerPrice"`
	Message    string     `json:"message,omitempty" firestore:"message,omitempty"`
	Status     string     `json:"status" firestore:"status"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" firestore:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time  `json:"updated_at" firestore:"updatedAt"`
}

func IsValidOfferStatus(status string) bool {
	for _, s := range OfferStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransitionTo enforces the offer state machine: pending is the only
// state with outgoing transitions, every other state is terminal.
func (o *Offer) CanTransitionTo(status string) bool {
	if o.Status != OfferStatusPending {
		return false
	}
	return IsValidOfferStatus(status) && status != OfferStatusPending
}

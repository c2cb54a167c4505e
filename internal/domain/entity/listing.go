package entity

import "time"

const (
	ListingStatusActive  = "active"
	ListingStatusSold    = "sold"
	ListingStatusPending = "pending"
	ListingStatusDeleted = "deleted"
	ListingStatusExpired = "expired"
)

var ListingStatuses = []string{
	ListingStatusActive,
	ListingStatusSold,
	ListingStatusPending,
	ListingStatusDeleted,
	ListingStatusExpired,
}

type Listing struct {
	ID             string    `json:"id" firestore:"id"`
	SellerUID      string    `json:"seller_uid" firestore:"sellerUid"`
	Title          string    `json:"title" firestore:"title"`
	Description    string    `json:"description" firestore:"description"`
	Price          float64   `json:"price" firestore:"price"`
	Category       string    `json:"category" firestore:"category"`
	Condition      string    `json:"condition,omitempty" firestore:"condition,omitempty"` // "New", "Like New", "Good", "Fair", "Poor"
	ImageURLs      []string  `json:"image_urls" firestore:"imageUrls"`
	Status         string    `json:"status" firestore:"status"`
	ViewCount      int64     `json:"view_count" firestore:"viewCount"`
	SearchKeywords []string  `json:"search_keywords,omitempty" firestore:"searchKeywords"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

func IsValidListingStatus(status string) bool {
	for _, s := range ListingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

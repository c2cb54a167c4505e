package entity

import "time"

// UserProfile mirrors the auth user in the document store, keyed by the
// auth UID. Auth flows themselves are handled by the identity provider.
type UserProfile struct {
	UID         string    `json:"uid" firestore:"uid"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"display_name,omitempty" firestore:"displayName,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	Bio         string    `json:"bio,omitempty" firestore:"bio,omitempty"`
	IsVerified  bool      `json:"is_verified" firestore:"isVerified"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

package entity

import "time"

// LastMessage is the denormalized preview of the newest message, kept on
// the conversation document so list screens don't need a subquery.
type LastMessage struct {
	Text      string    `json:"text" firestore:"text"`
	SenderUID string    `json:"sender_uid" firestore:"senderUid"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// Conversation is the unique thread between two users about one listing.
// ParticipantUIDs is always stored sorted lexicographically so the
// (listing, pair) key is canonical.
type Conversation struct {
	ID              string         `json:"id" firestore:"id"`
	ListingID       string         `json:"listing_id" firestore:"listingId"`
	ParticipantUIDs []string       `json:"participant_uids" firestore:"participantUids"`
	LastMessage     *LastMessage   `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	UnreadCounts    map[string]int `json:"unread_counts" firestore:"unreadCounts"`
	CreatedAt       time.Time      `json:"created_at" firestore:"createdAt,serverTimestamp"`
	UpdatedAt       time.Time      `json:"updated_at" firestore:"updatedAt,serverTimestamp"`
}

// HasParticipant reports whether uid is one of the two participants.
func (c *Conversation) HasParticipant(uid string) bool {
	for _, p := range c.ParticipantUIDs {
		if p == uid {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not uid.
func (c *Conversation) OtherParticipant(uid string) string {
	for _, p := range c.ParticipantUIDs {
		if p != uid {
			return p
		}
	}
	return ""
}

package entity

import "time"

// Message lives in the messages subcollection of its conversation and is
// immutable once written. Timestamp is assigned by the store at write time
// so ordering is not subject to client clock skew.
type Message struct {
	ID        string    `json:"id" firestore:"id"`
	SenderUID string    `json:"sender_uid" firestore:"senderUid"`
	Text      string    `json:"text" firestore:"text"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}

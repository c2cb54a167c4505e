package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type ConversationRepository interface {
	// GetOrCreate returns the unique conversation for the listing and the
	// unordered participant pair, creating it if absent. Implementations
	// must guarantee at-most-one document per (listing, pair) even under
	// concurrent first contact from both sides. The bool reports whether
	// a new conversation was created.
	GetOrCreate(ctx context.Context, listingID, uidA, uidB string) (*entity.Conversation, bool, error)

	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, uid string) ([]*entity.Conversation, error)

	// AppendMessage writes the message into the conversation's message
	// subcollection with a store-assigned timestamp, then updates the
	// parent's lastMessage, updatedAt and the recipient's unread count via
	// an atomic increment.
	AppendMessage(ctx context.Context, conversationID string, message *entity.Message, recipientUID string) error

	ListMessages(ctx context.Context, conversationID string, limit int) ([]*entity.Message, error)

	// SubscribeMessages registers a live listener on the conversation's
	// messages ordered by timestamp ascending; onChange receives the full
	// ordered slice on every change. The returned func cancels delivery.
	SubscribeMessages(ctx context.Context, conversationID string, onChange func([]*entity.Message)) (func(), error)

	MarkRead(ctx context.Context, conversationID, uid string) error
}

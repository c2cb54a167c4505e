package usecase

import (
	"context"
	"strings"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/internal/infrastructure/ratelimit"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

// maxMessageLength is a hard cap on message text; the mobile UI caps at
// 500 but the service tolerates longer input up to this bound.
const maxMessageLength = 2000

type ConversationUseCase struct {
	conversationRepo repository.ConversationRepository
	listingRepo      repository.ListingRepository
	rateLimiter      *ratelimit.RateLimiter
}

func NewConversationUseCase(
	conversationRepo repository.ConversationRepository,
	listingRepo repository.ListingRepository,
) *ConversationUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ConversationUseCase{
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		rateLimiter:      rateLimiter,
	}
}

type StartConversationInput struct {
	ListingID      string
	RecipientUID   string // defaults to the listing's seller
	InitialMessage string
}

type ConversationResponse struct {
	*entity.Conversation
	Listing *entity.Listing `json:"listing,omitempty"`
	Created bool            `json:"created"`
}

// Start resolves the unique conversation for (listing, requester,
// recipient), creating it on first contact. Safe to call from both sides
// concurrently; the repository guarantees a single document per pair.
func (uc *ConversationUseCase) Start(ctx context.Context, userUID string, input StartConversationInput) (*ConversationResponse, error) {
	allowed, _ := uc.rateLimiter.Allow(userUID, "start_conversation")
	if !allowed {
		return nil, errors.TooManyRequests("Too many new conversations. Please wait before starting another")
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	recipientUID := input.RecipientUID
	if recipientUID == "" {
		recipientUID = listing.SellerUID
	}
	if recipientUID == userUID {
		return nil, errors.BadRequest("You cannot start a conversation with yourself", nil)
	}

	conversation, created, err := uc.conversationRepo.GetOrCreate(ctx, input.ListingID, userUID, recipientUID)
	if err != nil {
		return nil, err
	}

	if created {
		logger.Info("Conversation %s created for listing %s", conversation.ID, input.ListingID)
	}

	if input.InitialMessage != "" {
		if _, err := uc.SendMessage(ctx, userUID, conversation.ID, input.InitialMessage); err != nil {
			return nil, err
		}
	}

	return &ConversationResponse{
		Conversation: conversation,
		Listing:      listing,
		Created:      created,
	}, nil
}

func (uc *ConversationUseCase) GetByID(ctx context.Context, userUID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(userUID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return conversation, nil
}

// ListForUser returns the user's conversations, most recently active
// first.
func (uc *ConversationUseCase) ListForUser(ctx context.Context, userUID string) ([]*entity.Conversation, error) {
	return uc.conversationRepo.ListByUserID(ctx, userUID)
}

func (uc *ConversationUseCase) SendMessage(ctx context.Context, senderUID, conversationID, text string) (*entity.Message, error) {
	allowed, _ := uc.rateLimiter.Allow(senderUID, "send_message")
	if !allowed {
		return nil, errors.TooManyRequests("Too many messages. Please slow down")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.BadRequest("Message text must not be empty", nil)
	}
	if len(text) > maxMessageLength {
		return nil, errors.BadRequest("Message text is too long", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(senderUID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}
	recipientUID := conversation.OtherParticipant(senderUID)

	message := &entity.Message{
		SenderUID: senderUID,
		Text:      text,
	}

	if err := uc.conversationRepo.AppendMessage(ctx, conversationID, message, recipientUID); err != nil {
		return nil, err
	}

	return message, nil
}

func (uc *ConversationUseCase) ListMessages(ctx context.Context, userUID, conversationID string, limit int) ([]*entity.Message, error) {
	if _, err := uc.GetByID(ctx, userUID, conversationID); err != nil {
		return nil, err
	}

	return uc.conversationRepo.ListMessages(ctx, conversationID, limit)
}

// Subscribe attaches a live listener to the conversation's messages. The
// caller owns the returned cancel func; once called, no further onChange
// invocations are delivered.
func (uc *ConversationUseCase) Subscribe(ctx context.Context, userUID, conversationID string, onChange func([]*entity.Message)) (func(), error) {
	if _, err := uc.GetByID(ctx, userUID, conversationID); err != nil {
		return nil, err
	}

	return uc.conversationRepo.SubscribeMessages(ctx, conversationID, onChange)
}

// MarkRead zeroes the caller's unread counter. Idempotent.
func (uc *ConversationUseCase) MarkRead(ctx context.Context, userUID, conversationID string) error {
	if _, err := uc.GetByID(ctx, userUID, conversationID); err != nil {
		return err
	}

	return uc.conversationRepo.MarkRead(ctx, conversationID, userUID)
}

package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

// conversationDocID derives a deterministic document ID from the listing
// and the sorted participant pair. Both sides of a first contact compute
// the same ID, so a duplicate create fails with AlreadyExists instead of
// producing a second conversation.
func conversationDocID(listingID, uidLow, uidHigh string) string {
	sum := sha256.Sum256([]byte(listingID + "|" + uidLow + "|" + uidHigh))
	return hex.EncodeToString(sum[:])[:32]
}

func (r *firestoreConversationRepository) GetOrCreate(ctx context.Context, listingID, uidA, uidB string) (*entity.Conversation, bool, error) {
	participants := []string{uidA, uidB}
	sort.Strings(participants)

	docID := conversationDocID(listingID, participants[0], participants[1])
	docRef := r.client.Collection("conversations").Doc(docID)

	conversation := &entity.Conversation{
		ID:              docID,
		ListingID:       listingID,
		ParticipantUIDs: participants,
		UnreadCounts: map[string]int{
			participants[0]: 0,
			participants[1]: 0,
		},
	}

	_, err := docRef.Create(ctx, conversation)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			existing, getErr := r.GetByID(ctx, docID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, errors.Internal("Failed to create conversation", err)
	}

	// Re-read so the caller sees the store-assigned timestamps.
	created, err := r.GetByID(ctx, docID)
	if err != nil {
		return nil, false, err
	}

	return created, true, nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	conversation.ID = doc.Ref.ID

	return &conversation, nil
}

func (r *firestoreConversationRepository) ListByUserID(ctx context.Context, uid string) ([]*entity.Conversation, error) {
	query := r.client.Collection("conversations").
		Where("participantUids", "array-contains", uid).
		OrderBy("updatedAt", firestore.Desc)

	iter := query.Documents(ctx)
	var conversations []*entity.Conversation

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate conversations", err)
		}

		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			logger.Warn("Skipping malformed conversation %s: %v", doc.Ref.ID, err)
			continue
		}
		conversation.ID = doc.Ref.ID
		conversations = append(conversations, &conversation)
	}

	if conversations == nil {
		conversations = []*entity.Conversation{}
	}

	return conversations, nil
}

func (r *firestoreConversationRepository) AppendMessage(ctx context.Context, conversationID string, message *entity.Message, recipientUID string) error {
	convoRef := r.client.Collection("conversations").Doc(conversationID)
	msgRef := convoRef.Collection("messages").NewDoc()
	message.ID = msgRef.ID

	if _, err := msgRef.Create(ctx, message); err != nil {
		return errors.Internal("Failed to create message", err)
	}

	// The recipient's unread counter must be a store-side increment:
	// concurrent sends to the same user would lose updates with a
	// read-modify-write.
	_, err := convoRef.Update(ctx, []firestore.Update{
		{Path: "lastMessage.text", Value: message.Text},
		{Path: "lastMessage.senderUid", Value: message.SenderUID},
		{Path: "lastMessage.timestamp", Value: firestore.ServerTimestamp},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
		{FieldPath: firestore.FieldPath{"unreadCounts", recipientUID}, Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to update conversation after message", err)
	}

	return nil
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, conversationID string, limit int) ([]*entity.Message, error) {
	query := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").
		OrderBy("timestamp", firestore.Asc)

	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	if messages == nil {
		messages = []*entity.Message{}
	}

	return messages, nil
}

func (r *firestoreConversationRepository) SubscribeMessages(ctx context.Context, conversationID string, onChange func([]*entity.Message)) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	query := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").
		OrderBy("timestamp", firestore.Asc)

	snapshots := query.Snapshots(subCtx)

	go func() {
		defer snapshots.Stop()

		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				// Canceled subscriptions end here; anything else is a
				// broken stream and the listener is done either way.
				if status.Code(err) != codes.Canceled {
					logger.Warn("Message subscription for conversation %s ended: %v", conversationID, err)
				}
				return
			}

			docs, err := snapshot.Documents.GetAll()
			if err != nil {
				logger.Warn("Failed to read message snapshot for conversation %s: %v", conversationID, err)
				continue
			}

			messages := make([]*entity.Message, 0, len(docs))
			for _, doc := range docs {
				var message entity.Message
				if err := doc.DataTo(&message); err != nil {
					logger.Warn("Skipping malformed message %s: %v", doc.Ref.ID, err)
					continue
				}
				message.ID = doc.Ref.ID
				messages = append(messages, &message)
			}

			if subCtx.Err() != nil {
				return
			}
			onChange(messages)
		}
	}()

	return cancel, nil
}

func (r *firestoreConversationRepository) MarkRead(ctx context.Context, conversationID, uid string) error {
	_, err := r.client.Collection("conversations").Doc(conversationID).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"unreadCounts", uid}, Value: 0},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to mark conversation as read", err)
	}

	return nil
}

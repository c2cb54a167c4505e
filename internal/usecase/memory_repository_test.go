package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"campusmarket/internal/domain/entity"
	"campusmarket/pkg/errors"
)

// In-memory repository fakes backing the usecase tests. They mirror the
// Firestore adapters' observable behavior: deterministic conversation
// IDs, store-assigned message timestamps, atomic unread increments and
// newest-first ordering.

type memoryListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	seq      int
	base     time.Time

	failSetStatus bool
}

func newMemoryListingRepo() *memoryListingRepo {
	return &memoryListingRepo{
		listings: make(map[string]*entity.Listing),
		base:     time.Now(),
	}
}

func (r *memoryListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	r.seq++
	listing.CreatedAt = r.base.Add(time.Duration(r.seq) * time.Millisecond)
	listing.UpdatedAt = listing.CreatedAt

	clone := *listing
	r.listings[listing.ID] = &clone
	return nil
}

func (r *memoryListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	clone := *listing
	return &clone, nil
}

func (r *memoryListingRepo) ListBySeller(ctx context.Context, sellerUID, status string) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Listing
	for _, l := range r.listings {
		if l.SellerUID != sellerUID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryListingRepo) ListRecent(ctx context.Context, limit int, cursor string) ([]*entity.Listing, string, error) {
	return r.pageActive(func(l *entity.Listing) bool { return true }, limit, cursor)
}

func (r *memoryListingRepo) ListByCategory(ctx context.Context, category string, limit int, cursor string) ([]*entity.Listing, string, error) {
	return r.pageActive(func(l *entity.Listing) bool { return l.Category == category }, limit, cursor)
}

func (r *memoryListingRepo) Search(ctx context.Context, keywords []string, limit int, cursor string) ([]*entity.Listing, string, error) {
	return r.pageActive(func(l *entity.Listing) bool {
		for _, kw := range keywords {
			for _, have := range l.SearchKeywords {
				if kw == have {
					return true
				}
			}
		}
		return false
	}, limit, cursor)
}

func (r *memoryListingRepo) pageActive(match func(*entity.Listing) bool, limit int, cursor string) ([]*entity.Listing, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*entity.Listing
	for _, l := range r.listings {
		if l.Status != entity.ListingStatusActive || !match(l) {
			continue
		}
		clone := *l
		all = append(all, &clone)
	}
	sortNewestFirst(all)

	start := 0
	if cursor != "" {
		for i, l := range all {
			if l.ID == cursor {
				start = i + 1
				break
			}
		}
	}
	if start > len(all) {
		start = len(all)
	}

	end := len(all)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	page := all[start:end]
	if page == nil {
		page = []*entity.Listing{}
	}

	next := ""
	if limit > 0 && len(page) == limit {
		next = page[len(page)-1].ID
	}
	return page, next, nil
}

func (r *memoryListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listing.ID]; !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.UpdatedAt = time.Now()
	clone := *listing
	r.listings[listing.ID] = &clone
	return nil
}

func (r *memoryListingRepo) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failSetStatus {
		return errors.Internal("Failed to update listing status", nil)
	}

	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.Status = status
	listing.UpdatedAt = time.Now()
	return nil
}

func (r *memoryListingRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.ViewCount++
	return nil
}

func sortNewestFirst(listings []*entity.Listing) {
	sort.Slice(listings, func(i, j int) bool {
		if !listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		}
		return listings[i].ID > listings[j].ID
	})
}

type memorySubscriber struct {
	id       int
	onChange func([]*entity.Message)
}

type memoryConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	subscribers   map[string][]*memorySubscriber
	nextSubID     int
	clock         time.Time

	// presetTimestamps simulates out-of-order arrival of writes whose
	// store-assigned timestamps are already fixed.
	presetTimestamps []time.Time
}

func newMemoryConversationRepo() *memoryConversationRepo {
	return &memoryConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
		subscribers:   make(map[string][]*memorySubscriber),
		clock:         time.Now(),
	}
}

func (r *memoryConversationRepo) GetOrCreate(ctx context.Context, listingID, uidA, uidB string) (*entity.Conversation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	participants := []string{uidA, uidB}
	sort.Strings(participants)
	id := strings.Join([]string{listingID, participants[0], participants[1]}, "|")

	if existing, ok := r.conversations[id]; ok {
		clone := cloneConversation(existing)
		return clone, false, nil
	}

	conversation := &entity.Conversation{
		ID:              id,
		ListingID:       listingID,
		ParticipantUIDs: participants,
		UnreadCounts: map[string]int{
			participants[0]: 0,
			participants[1]: 0,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.conversations[id] = conversation

	return cloneConversation(conversation), true, nil
}

func (r *memoryConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return cloneConversation(conversation), nil
}

func (r *memoryConversationRepo) ListByUserID(ctx context.Context, uid string) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*entity.Conversation{}
	for _, c := range r.conversations {
		if c.HasParticipant(uid) {
			out = append(out, cloneConversation(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *memoryConversationRepo) AppendMessage(ctx context.Context, conversationID string, message *entity.Message, recipientUID string) error {
	r.mu.Lock()

	conversation, ok := r.conversations[conversationID]
	if !ok {
		r.mu.Unlock()
		return errors.NotFound("Conversation", nil)
	}

	message.ID = uuid.New().String()
	if len(r.presetTimestamps) > 0 {
		message.Timestamp = r.presetTimestamps[0]
		r.presetTimestamps = r.presetTimestamps[1:]
	} else {
		r.clock = r.clock.Add(time.Millisecond)
		message.Timestamp = r.clock
	}

	clone := *message
	r.messages[conversationID] = append(r.messages[conversationID], &clone)

	conversation.LastMessage = &entity.LastMessage{
		Text:      message.Text,
		SenderUID: message.SenderUID,
		Timestamp: message.Timestamp,
	}
	conversation.UpdatedAt = time.Now()
	conversation.UnreadCounts[recipientUID]++

	snapshot := r.orderedMessagesLocked(conversationID)
	subs := append([]*memorySubscriber(nil), r.subscribers[conversationID]...)
	r.mu.Unlock()

	for _, sub := range subs {
		sub.onChange(snapshot)
	}
	return nil
}

func (r *memoryConversationRepo) orderedMessagesLocked(conversationID string) []*entity.Message {
	msgs := append([]*entity.Message(nil), r.messages[conversationID]...)
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	return msgs
}

func (r *memoryConversationRepo) ListMessages(ctx context.Context, conversationID string, limit int) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.orderedMessagesLocked(conversationID)
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (r *memoryConversationRepo) SubscribeMessages(ctx context.Context, conversationID string, onChange func([]*entity.Message)) (func(), error) {
	r.mu.Lock()

	r.nextSubID++
	sub := &memorySubscriber{id: r.nextSubID, onChange: onChange}
	r.subscribers[conversationID] = append(r.subscribers[conversationID], sub)
	snapshot := r.orderedMessagesLocked(conversationID)
	r.mu.Unlock()

	// Initial snapshot, as a store listener would deliver.
	onChange(snapshot)

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		subs := r.subscribers[conversationID]
		for i, s := range subs {
			if s.id == sub.id {
				r.subscribers[conversationID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
	return cancel, nil
}

func (r *memoryConversationRepo) MarkRead(ctx context.Context, conversationID, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation, ok := r.conversations[conversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	conversation.UnreadCounts[uid] = 0
	conversation.UpdatedAt = time.Now()
	return nil
}

func cloneConversation(c *entity.Conversation) *entity.Conversation {
	clone := *c
	clone.ParticipantUIDs = append([]string(nil), c.ParticipantUIDs...)
	clone.UnreadCounts = make(map[string]int, len(c.UnreadCounts))
	for k, v := range c.UnreadCounts {
		clone.UnreadCounts[k] = v
	}
	if c.LastMessage != nil {
		lm := *c.LastMessage
		clone.LastMessage = &lm
	}
	return &clone
}

type memoryOfferRepo struct {
	mu     sync.Mutex
	offers map[string]*entity.Offer
	seq    int
	base   time.Time
}

func newMemoryOfferRepo() *memoryOfferRepo {
	return &memoryOfferRepo{
		offers: make(map[string]*entity.Offer),
		base:   time.Now(),
	}
}

func (r *memoryOfferRepo) Create(ctx context.Context, offer *entity.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	r.seq++
	offer.CreatedAt = r.base.Add(time.Duration(r.seq) * time.Millisecond)
	offer.UpdatedAt = offer.CreatedAt

	clone := *offer
	r.offers[offer.ID] = &clone
	return nil
}

func (r *memoryOfferRepo) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	offer, ok := r.offers[id]
	if !ok {
		return nil, errors.NotFound("Offer", nil)
	}
	clone := *offer
	return &clone, nil
}

func (r *memoryOfferRepo) ListByListing(ctx context.Context, listingID string) ([]*entity.Offer, error) {
	return r.list(func(o *entity.Offer) bool { return o.ListingID == listingID })
}

func (r *memoryOfferRepo) ListByBuyer(ctx context.Context, buyerUID, status string) ([]*entity.Offer, error) {
	return r.list(func(o *entity.Offer) bool {
		return o.BuyerUID == buyerUID && (status == "" || o.Status == status)
	})
}

func (r *memoryOfferRepo) ListBySeller(ctx context.Context, sellerUID, status string) ([]*entity.Offer, error) {
	return r.list(func(o *entity.Offer) bool {
		return o.SellerUID == sellerUID && (status == "" || o.Status == status)
	})
}

func (r *memoryOfferRepo) list(match func(*entity.Offer) bool) ([]*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*entity.Offer{}
	for _, o := range r.offers {
		if match(o) {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryOfferRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	offer, ok := r.offers[id]
	if !ok {
		return errors.NotFound("Offer", nil)
	}
	offer.Status = status
	offer.UpdatedAt = time.Now()
	return nil
}

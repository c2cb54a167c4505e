package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
}

func NewListingUseCase(listingRepo repository.ListingRepository) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
	}
}

type CreateListingInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Condition   string
	ImageURLs   []string
}

type UpdateListingInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Condition   *string
	ImageURLs   []string
	Status      *string
}

// buildSearchKeywords derives the denormalized keyword set matched by
// Search: lower-cased title tokens plus category and condition, with
// single-character tokens dropped.
func buildSearchKeywords(title, category, condition string) []string {
	tokens := strings.Fields(strings.ToLower(title))
	tokens = append(tokens, strings.ToLower(category))
	if condition != "" {
		tokens = append(tokens, strings.ToLower(condition))
	}

	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) > 1 {
			keywords = append(keywords, token)
		}
	}
	return keywords
}

func tokenizeQuery(text string) []string {
	tokens := strings.Fields(strings.ToLower(text))
	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) > 1 {
			keywords = append(keywords, token)
		}
	}
	return keywords
}

func (uc *ListingUseCase) Create(ctx context.Context, sellerUID string, input CreateListingInput) (*entity.Listing, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Listing title is required", nil)
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, errors.BadRequest("Listing category is required", nil)
	}
	if input.Price <= 0 {
		return nil, errors.BadRequest("Listing price must be greater than zero", nil)
	}

	listing := &entity.Listing{
		ID:             uuid.New().String(),
		SellerUID:      sellerUID,
		Title:          input.Title,
		Description:    input.Description,
		Price:          input.Price,
		Category:       input.Category,
		Condition:      input.Condition,
		ImageURLs:      input.ImageURLs,
		Status:         entity.ListingStatusActive,
		ViewCount:      0,
		SearchKeywords: buildSearchKeywords(input.Title, input.Category, input.Condition),
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

// RecordView bumps the listing's view counter. Failures are logged and
// swallowed; a lost view must never fail the read that triggered it.
func (uc *ListingUseCase) RecordView(ctx context.Context, id string) {
	if err := uc.listingRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("Failed to record view for listing %s: %v", id, err)
	}
}

func (uc *ListingUseCase) ListBySeller(ctx context.Context, sellerUID, statusFilter string) ([]*entity.Listing, error) {
	if statusFilter != "" && !entity.IsValidListingStatus(statusFilter) {
		return nil, errors.BadRequest("Invalid listing status filter", nil)
	}
	return uc.listingRepo.ListBySeller(ctx, sellerUID, statusFilter)
}

func (uc *ListingUseCase) ListRecent(ctx context.Context, limit int, cursor string) ([]*entity.Listing, string, error) {
	return uc.listingRepo.ListRecent(ctx, limit, cursor)
}

func (uc *ListingUseCase) ListByCategory(ctx context.Context, category string, limit int, cursor string) ([]*entity.Listing, string, error) {
	return uc.listingRepo.ListByCategory(ctx, category, limit, cursor)
}

// Search matches listings whose keyword set intersects the query tokens
// (match-any). An empty token set yields an empty result, not all
// listings.
func (uc *ListingUseCase) Search(ctx context.Context, text string, limit int, cursor string) ([]*entity.Listing, string, error) {
	keywords := tokenizeQuery(text)
	if len(keywords) == 0 {
		return []*entity.Listing{}, "", nil
	}
	return uc.listingRepo.Search(ctx, keywords, limit, cursor)
}

func (uc *ListingUseCase) Update(ctx context.Context, sellerUID, id string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if listing.SellerUID != sellerUID {
		return nil, errors.Forbidden("Only the seller can update this listing", nil)
	}

	keywordsDirty := false

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, errors.BadRequest("Listing title is required", nil)
		}
		listing.Title = *input.Title
		keywordsDirty = true
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, errors.BadRequest("Listing price must be greater than zero", nil)
		}
		listing.Price = *input.Price
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return nil, errors.BadRequest("Listing category is required", nil)
		}
		listing.Category = *input.Category
		keywordsDirty = true
	}
	if input.Condition != nil {
		listing.Condition = *input.Condition
		keywordsDirty = true
	}
	if input.ImageURLs != nil {
		listing.ImageURLs = input.ImageURLs
	}
	if input.Status != nil {
		if !entity.IsValidListingStatus(*input.Status) {
			return nil, errors.BadRequest("Invalid listing status", nil)
		}
		listing.Status = *input.Status
	}

	if keywordsDirty {
		listing.SearchKeywords = buildSearchKeywords(listing.Title, listing.Category, listing.Condition)
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// Delete soft-deletes; listing history is retained for conversations and
// offers that reference it.
func (uc *ListingUseCase) Delete(ctx context.Context, sellerUID, id string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if listing.SellerUID != sellerUID {
		return errors.Forbidden("Only the seller can delete this listing", nil)
	}

	return uc.listingRepo.SetStatus(ctx, id, entity.ListingStatusDeleted)
}

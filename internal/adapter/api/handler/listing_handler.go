package handler

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/usecase"
	"campusmarket/pkg/response"
	"campusmarket/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required"`
	Condition   string   `json:"condition"`
	ImageURLs   []string `json:"image_urls" validate:"omitempty,dive,url"`
}

type updateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	Condition   *string  `json:"condition"`
	ImageURLs   []string `json:"image_urls" validate:"omitempty,dive,url"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active sold pending deleted expired"`
}

// ListListings returns recent active listings, cursor-paginated.
func (h *ListingHandler) ListListings(c echo.Context) error {
	params := utils.GetPageParams(c)

	listings, nextCursor, err := h.listingUseCase.ListRecent(c.Request().Context(), params.Limit, params.Cursor)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Page(c, listings, nextCursor)
}

func (h *ListingHandler) ListByCategory(c echo.Context) error {
	params := utils.GetPageParams(c)

	listings, nextCursor, err := h.listingUseCase.ListByCategory(c.Request().Context(), c.Param("category"), params.Limit, params.Cursor)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Page(c, listings, nextCursor)
}

func (h *ListingHandler) SearchListings(c echo.Context) error {
	params := utils.GetPageParams(c)

	listings, nextCursor, err := h.listingUseCase.Search(c.Request().Context(), c.QueryParam("q"), params.Limit, params.Cursor)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Page(c, listings, nextCursor)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	ctx := c.Request().Context()

	listing, err := h.listingUseCase.GetByID(ctx, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	h.listingUseCase.RecordView(ctx, listing.ID)

	return response.Success(c, listing)
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerUID := c.Get("uid").(string)

	listing, err := h.listingUseCase.Create(c.Request().Context(), sellerUID, usecase.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	sellerUID := c.Get("uid").(string)

	listings, err := h.listingUseCase.ListBySeller(c.Request().Context(), sellerUID, c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerUID := c.Get("uid").(string)

	listing, err := h.listingUseCase.Update(c.Request().Context(), sellerUID, c.Param("id"), usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		ImageURLs:   req.ImageURLs,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	sellerUID := c.Get("uid").(string)

	if err := h.listingUseCase.Delete(c.Request().Context(), sellerUID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

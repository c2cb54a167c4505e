package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
)

type OfferHandler struct {
	offerUseCase *usecase.OfferUseCase
}

func NewOfferHandler(offerUseCase *usecase.OfferUseCase) *OfferHandler {
	return &OfferHandler{
		offerUseCase: offerUseCase,
	}
}

type makeOfferRequest struct {
	ListingID  string     `json:"listing_id" validate:"required"`
	OfferPrice float64    `json:"offer_price" validate:"required,gt=0"`
	Message    string     `json:"message"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

type updateOfferStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined countered retracted expired"`
}

func (h *OfferHandler) MakeOffer(c echo.Context) error {
	var req makeOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	buyerUID := c.Get("uid").(string)

	offer, err := h.offerUseCase.Make(c.Request().Context(), buyerUID, usecase.MakeOfferInput{
		ListingID:  req.ListingID,
		OfferPrice: req.OfferPrice,
		Message:    req.Message,
		ExpiresAt:  req.ExpiresAt,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, offer)
}

func (h *OfferHandler) GetOffer(c echo.Context) error {
	userUID := c.Get("uid").(string)

	offer, err := h.offerUseCase.GetByID(c.Request().Context(), userUID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}

// ListOffers lists the caller's offers as buyer or seller, newest first.
func (h *OfferHandler) ListOffers(c echo.Context) error {
	userUID := c.Get("uid").(string)
	statusFilter := c.QueryParam("status")

	switch c.QueryParam("role") {
	case "", "buyer":
		offers, err := h.offerUseCase.ListForBuyer(c.Request().Context(), userUID, statusFilter)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, offers)
	case "seller":
		offers, err := h.offerUseCase.ListForSeller(c.Request().Context(), userUID, statusFilter)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, offers)
	default:
		return response.Error(c, errors.BadRequest("role must be buyer or seller", nil))
	}
}

func (h *OfferHandler) ListListingOffers(c echo.Context) error {
	userUID := c.Get("uid").(string)

	offers, err := h.offerUseCase.ListForListing(c.Request().Context(), userUID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offers)
}

func (h *OfferHandler) UpdateOfferStatus(c echo.Context) error {
	var req updateOfferStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userUID := c.Get("uid").(string)

	offer, err := h.offerUseCase.SetStatus(c.Request().Context(), userUID, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}

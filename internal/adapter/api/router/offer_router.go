package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
)

func SetupOfferRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	offerHandler := handler.GetOfferHandler()

	offers := e.Group("/v1/offers")
	offers.Use(authMiddleware.Authenticate)
	offers.POST("", offerHandler.MakeOffer)
	offers.GET("", offerHandler.ListOffers)
	offers.GET("/:id", offerHandler.GetOffer)
	offers.PATCH("/:id/status", offerHandler.UpdateOfferStatus)

	listingOffers := e.Group("/v1/listings/:id/offers")
	listingOffers.Use(authMiddleware.Authenticate)
	listingOffers.GET("", offerHandler.ListListingOffers)
}
